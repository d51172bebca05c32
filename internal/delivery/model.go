package delivery

type Agent struct {
	UserID    uint
	Available bool
	Active    bool
}
