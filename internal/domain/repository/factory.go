package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Roles() RoleRepository
	Orders() OrderRepository
	Intakes() IntakeRepository
}
