package persistence

import (
	"context"
	"errors"

	"github.com/jpashop/backend/internal/domain/order"
	"github.com/jpashop/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save inserts a new order together with its delivery and lines. For an
// existing order only the order row is updated; item stock is saved through
// the item repository.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	db := r.db.WithContext(ctx)
	if o.ID != 0 {
		result := db.Model(o).
			Select("status", "updated_at", "last_modified_by").
			Updates(o)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if o.Delivery != nil {
			if err := tx.Omit(clause.Associations).Create(o.Delivery).Error; err != nil {
				return err
			}
			o.DeliveryID = o.Delivery.ID
		}
		if err := tx.Omit(clause.Associations).Create(o).Error; err != nil {
			return err
		}
		for i := range o.OrderItems {
			o.OrderItems[i].OrderID = o.ID
			if err := tx.Omit(clause.Associations).Create(&o.OrderItems[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindOne loads an order with member, delivery and lines
func (r *GormOrderRepository) FindOne(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Delivery").
		Preload("OrderItems.Item").
		First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAllByCriteria builds the predicate list from the criteria that are set.
// With no criteria every order is returned, up to MaxSearchResults.
func (r *GormOrderRepository) FindAllByCriteria(ctx context.Context, search order.OrderSearch) ([]order.Order, error) {
	var exprs []clause.Expression
	if search.HasStatus() {
		exprs = append(exprs, clause.Eq{
			Column: clause.Column{Table: "orders", Name: "status"},
			Value:  string(*search.OrderStatus),
		})
	}
	if search.HasMemberName() {
		exprs = append(exprs, clause.Like{
			Column: clause.Column{Table: "Member", Name: "name"},
			Value:  "%" + search.MemberName + "%",
		})
	}

	query := r.db.WithContext(ctx).
		InnerJoins("Member").
		Preload("Delivery").
		Preload("OrderItems.Item")
	if len(exprs) > 0 {
		query = query.Clauses(clause.Where{Exprs: exprs})
	}

	var orders []order.Order
	if err := query.Order("orders.id").Limit(order.MaxSearchResults).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAllWithMemberDelivery fetches orders, members and deliveries in one statement
func (r *GormOrderRepository) FindAllWithMemberDelivery(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := r.db.WithContext(ctx).
		InnerJoins("Member").
		InnerJoins("Delivery").
		Order("orders.id").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindOrderDTOs projects the order summary columns without loading entities
func (r *GormOrderRepository) FindOrderDTOs(ctx context.Context) ([]order.SimpleQueryDTO, error) {
	var rows []order.SimpleQueryDTO
	if err := r.db.WithContext(ctx).
		Table("orders AS o").
		Select("o.id AS order_id, m.name AS name, o.order_date AS order_date, o.status AS order_status, " +
			"d.city AS city, d.street AS street, d.zipcode AS zipcode").
		Joins("JOIN members AS m ON m.id = o.member_id").
		Joins("JOIN deliveries AS d ON d.id = o.delivery_id").
		Order("o.id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)
