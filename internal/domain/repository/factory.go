package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Customers() CustomerRepository
	Products() ProductRepository
	Inventory() InventoryLedger
	StandardOrders() StandardOrderRepository
	CustomOrders() CustomOrderRepository
	Staff() StaffRepository
}
