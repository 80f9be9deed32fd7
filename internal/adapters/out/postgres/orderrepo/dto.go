// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the database representation of an order aggregate. The total
// amount is denormalized into its own column for reporting queries; the
// domain aggregate remains the source of truth and the column is rewritten
// from it on every persist.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber     string    `gorm:"uniqueIndex;not null"`
	CustomerID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Status          int       `gorm:"index"`
	PaymentStatus   int
	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2)"`
	ShippingAddress string          `gorm:"type:text;not null"`
	BillingAddress  string          `gorm:"type:text;not null"`
	PaymentMethod   string
	Notes           string `gorm:"type:text"`
	OrderedAt       time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	Items           []ItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is the database representation of one order line. The line total is
// stored for reporting but always written as unitPrice * quantity; items are
// never updated after creation.
type ItemDTO struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

// TableName specifies the database table name for order items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			OrderID:    aggregate.ID().Bytes(),
			ProductID:  item.ProductID().Bytes(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			TotalPrice: item.TotalPrice(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		Status:          int(aggregate.Status()),
		PaymentStatus:   int(aggregate.PaymentStatus()),
		TotalAmount:     aggregate.TotalAmount(),
		ShippingAddress: aggregate.ShippingAddress(),
		BillingAddress:  aggregate.BillingAddress(),
		PaymentMethod:   aggregate.PaymentMethod(),
		Notes:           aggregate.Notes(),
		OrderedAt:       aggregate.OrderedAt(),
		ShippedAt:       aggregate.ShippedAt(),
		DeliveredAt:     aggregate.DeliveredAt(),
		CancelledAt:     aggregate.CancelledAt(),
		Items:           itemDTOs,
	}
}

// toDomain converts a database DTO back to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewItem(productID, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		customerID,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		dto.ShippingAddress,
		dto.BillingAddress,
		dto.PaymentMethod,
		dto.Notes,
		dto.OrderedAt,
		dto.ShippedAt,
		dto.DeliveredAt,
		dto.CancelledAt,
		items,
	)
}
