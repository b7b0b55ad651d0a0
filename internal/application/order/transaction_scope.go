package order

import (
	"context"

	"github.com/jpashop/backend/internal/domain/catalog"
	"github.com/jpashop/backend/internal/domain/member"
	"github.com/jpashop/backend/internal/domain/order"
)

// TransactionScope runs a unit of work in one database transaction. An error
// returned by fn rolls the whole unit back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories bound to the current transaction.
type TransactionalRepositories interface {
	Members() member.MemberRepository
	Items() catalog.ItemRepository
	Orders() order.OrderRepository
}
