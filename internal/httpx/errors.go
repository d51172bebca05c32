package httpx

import (
	"errors"
	"net/http"

	"mandimart-be/internal/analytics"
	"mandimart-be/internal/cart"
	"mandimart-be/internal/delivery"
	"mandimart-be/internal/inventory"
	"mandimart-be/internal/order"
	"mandimart-be/internal/product"
	"mandimart-be/internal/user"
	"mandimart-be/internal/utils"
)

// writeError maps domain sentinel errors onto HTTP status codes. Anything
// unclassified is a 500 with a generic body; the real error stays in the
// logs.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, inventory.ErrProductNotFound),
		errors.Is(err, delivery.ErrOrderNotFound),
		errors.Is(err, delivery.ErrAgentNotFound),
		errors.Is(err, user.ErrUserNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, order.ErrForbidden),
		errors.Is(err, product.ErrNotProductOwner),
		errors.Is(err, delivery.ErrAgentInactive):
		utils.WriteJSONError(w, err.Error(), http.StatusForbidden)

	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, delivery.ErrAlreadyClaimed),
		errors.Is(err, delivery.ErrNotClaimable),
		errors.Is(err, product.ErrHasOrderHistory),
		errors.Is(err, user.ErrEmailExists):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)

	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrCartEmpty),
		errors.Is(err, cart.ErrProductUnavailable),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrEmptyAddress),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidStock),
		errors.Is(err, product.ErrNoFields),
		errors.Is(err, analytics.ErrInvalidRange),
		errors.Is(err, user.ErrInvalidRole):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, user.ErrInvalidCredentials):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)

	default:
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
