package routes

import (
	"fmt"

	"github.com/angelmondragon/orderdesk/internal/customers"
	"github.com/angelmondragon/orderdesk/internal/orders"
	"github.com/angelmondragon/orderdesk/internal/products"
	"github.com/angelmondragon/orderdesk/internal/suppliers"
	"github.com/angelmondragon/orderdesk/internal/users"
	"github.com/angelmondragon/orderdesk/pkg/db"
	"github.com/angelmondragon/orderdesk/pkg/logger"
	"github.com/angelmondragon/orderdesk/pkg/metrics"
)

// Services groups the domain services exposed over HTTP.
type Services struct {
	Customers  customers.Service
	Suppliers  suppliers.Service
	Users      users.Service
	Products   products.Service
	Orders     orders.Service
	OrderItems orders.ItemService
}

// NewServices builds every domain service on top of one database client.
func NewServices(dbClient *db.Client, orderMetrics *metrics.OrderMetrics, logg *logger.Logger) (Services, error) {
	if dbClient == nil {
		return Services{}, fmt.Errorf("database client required")
	}
	conn := dbClient.DB()

	customerRepo := customers.NewRepository(conn)
	productRepo := products.NewRepository(conn)
	orderRepo := orders.NewRepository(conn)

	var (
		out Services
		err error
	)
	if out.Customers, err = customers.NewService(customerRepo, logg); err != nil {
		return Services{}, fmt.Errorf("customers service: %w", err)
	}
	if out.Suppliers, err = suppliers.NewService(suppliers.NewRepository(conn), logg); err != nil {
		return Services{}, fmt.Errorf("suppliers service: %w", err)
	}
	if out.Users, err = users.NewService(users.NewRepository(conn), logg); err != nil {
		return Services{}, fmt.Errorf("users service: %w", err)
	}
	if out.Products, err = products.NewService(productRepo, logg); err != nil {
		return Services{}, fmt.Errorf("products service: %w", err)
	}

	composer, err := orders.NewComposer(productRepo, orderRepo)
	if err != nil {
		return Services{}, fmt.Errorf("order composer: %w", err)
	}
	if out.Orders, err = orders.NewService(orderRepo, dbClient, customerRepo, composer, orderMetrics, logg); err != nil {
		return Services{}, fmt.Errorf("orders service: %w", err)
	}
	if out.OrderItems, err = orders.NewItemService(orderRepo, dbClient, productRepo, composer, orderMetrics, logg); err != nil {
		return Services{}, fmt.Errorf("order items service: %w", err)
	}
	return out, nil
}
