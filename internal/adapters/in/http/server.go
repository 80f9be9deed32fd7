// Package http exposes the order and product use cases over a JSON REST API.
// The requester identity is read from the X-User-ID header on every call;
// authorization itself happens inside the use case handlers.
package http

import (
	"errors"
	"net/http"
	"time"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// RequesterHeader carries the authenticated caller identity, set by the
// authentication layer in front of this API.
const RequesterHeader = "X-User-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         commands.CreateOrderCommandHandler
	cancelOrderHandler         commands.CancelOrderCommandHandler
	shipOrderHandler           commands.ShipOrderCommandHandler
	deliverOrderHandler        commands.DeliverOrderCommandHandler
	updateOrderStatusHandler   commands.UpdateOrderStatusCommandHandler
	updatePaymentStatusHandler commands.UpdatePaymentStatusCommandHandler
	createProductHandler       commands.CreateProductCommandHandler
	setProductStockHandler     commands.SetProductStockCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	shipOrderHandler commands.ShipOrderCommandHandler,
	deliverOrderHandler commands.DeliverOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	updatePaymentStatusHandler commands.UpdatePaymentStatusCommandHandler,
	createProductHandler commands.CreateProductCommandHandler,
	setProductStockHandler commands.SetProductStockCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		cancelOrderHandler:         cancelOrderHandler,
		shipOrderHandler:           shipOrderHandler,
		deliverOrderHandler:        deliverOrderHandler,
		updateOrderStatusHandler:   updateOrderStatusHandler,
		updatePaymentStatusHandler: updatePaymentStatusHandler,
		createProductHandler:       createProductHandler,
		setProductStockHandler:     setProductStockHandler,
		getOrderHandler:            getOrderHandler,
		getCustomerOrdersHandler:   getCustomerOrdersHandler,
	}
}

// RegisterRoutes attaches all API endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/ship", s.ShipOrder)
	api.POST("/orders/:id/deliver", s.DeliverOrder)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus)
	api.PUT("/orders/:id/payment-status", s.UpdatePaymentStatus)
	api.GET("/customers/:id/orders", s.GetCustomerOrders)
	api.POST("/products", s.CreateProduct)
	api.PUT("/products/:id/stock", s.SetProductStock)
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderLineRequest is one requested line of a new order.
type OrderLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	ShippingAddress string             `json:"shippingAddress"`
	BillingAddress  string             `json:"billingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	Notes           string             `json:"notes"`
	Lines           []OrderLineRequest `json:"lines"`
}

// UpdateOrderStatusRequest is the body of PUT /orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdatePaymentStatusRequest is the body of PUT /orders/:id/payment-status.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// CreateProductRequest is the body of POST /products.
type CreateProductRequest struct {
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	QuantityInStock int    `json:"quantityInStock"`
}

// SetProductStockRequest is the body of PUT /products/:id/stock.
type SetProductStockRequest struct {
	Quantity int `json:"quantity"`
}

// OrderItemResponse is one line of an order in API responses.
type OrderItemResponse struct {
	ProductID  string          `json:"productId"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// OrderResponse is the API representation of an order.
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	CustomerID      string              `json:"customerId"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"paymentStatus"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	ShippingAddress string              `json:"shippingAddress"`
	BillingAddress  string              `json:"billingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	Notes           string              `json:"notes,omitempty"`
	OrderedAt       time.Time           `json:"orderedAt"`
	ShippedAt       *time.Time          `json:"shippedAt,omitempty"`
	DeliveredAt     *time.Time          `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time          `json:"cancelledAt,omitempty"`
	Items           []OrderItemResponse `json:"items"`
}

// OrderSummaryResponse is one row of a customer's order history.
type OrderSummaryResponse struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	ItemCount     int             `json:"itemCount"`
	OrderedAt     time.Time       `json:"orderedAt"`
}

// ProductResponse is the API representation of a catalog product.
type ProductResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int             `json:"quantityInStock"`
	IsActive        bool            `json:"isActive"`
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	requesterID, ok := requesterFromHeader(ctx)
	if !ok {
		return nil
	}

	var request CreateOrderRequest
	if bindErr := ctx.Bind(&request); bindErr != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	lines := make([]commands.OrderLine, 0, len(request.Lines))
	for _, lineRequest := range request.Lines {
		productID, idErr := kernel.UUIDFromString(lineRequest.ProductID)
		if idErr != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid product id: " + lineRequest.ProductID,
			})
		}

		line, lineErr := commands.NewOrderLine(productID, lineRequest.Quantity)
		if lineErr != nil {
			return writeError(ctx, lineErr)
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		requesterID,
		request.ShippingAddress,
		request.BillingAddress,
		request.PaymentMethod,
		request.Notes,
		lines,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	placed, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(placed))
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	requesterID, ok := requesterFromHeader(ctx)
	if !ok {
		return nil
	}

	orderID, ok := idFromPath(ctx)
	if !ok {
		return nil
	}

	query, err := queries.NewGetOrderQuery(orderID, requesterID)
	if err != nil {
		return writeError(ctx, err)
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]OrderItemResponse, 0, len(found.Items))
	for _, item := range found.Items {
		items = append(items, OrderItemResponse{
			ProductID:  item.ProductID.String(),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:              found.ID.String(),
		OrderNumber:     found.OrderNumber,
		CustomerID:      found.CustomerID.String(),
		Status:          found.Status,
		PaymentStatus:   found.PaymentStatus,
		TotalAmount:     found.TotalAmount,
		ShippingAddress: found.ShippingAddress,
		BillingAddress:  found.BillingAddress,
		PaymentMethod:   found.PaymentMethod,
		Notes:           found.Notes,
		OrderedAt:       found.OrderedAt,
		ShippedAt:       found.ShippedAt,
		DeliveredAt:     found.DeliveredAt,
		CancelledAt:     found.CancelledAt,
		Items:           items,
	})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	requesterID, ok := requesterFromHeader(ctx)
	if !ok {
		return nil
	}

	orderID, ok := idFromPath(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, requesterID)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ShipOrder handles POST /api/v1/orders/:id/ship.
func (s *Server) ShipOrder(ctx echo.Context) error {
	requesterID, ok := requesterFromHeader(ctx)
	if !ok {
		return nil
	}

	orderID, ok := idFromPath(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewShipOrderCommand(orderID, requesterID)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.shipOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	requesterID, ok := requesterFromHeader(ctx)
	if !ok {
		return nil
	}

	orderID, ok := idFromPath(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, requesterID)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status - admin override.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	requesterID, ok := requesterFromHeader(ctx)
	if !ok {
		return nil
	}

	orderID, ok := idFromPath(ctx)
	if !ok {
		return nil
	}

	var request UpdateOrderStatusRequest
	if bindErr := ctx.Bind(&request); bindErr != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, requesterID, request.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdatePaymentStatus handles PUT /api/v1/orders/:id/payment-status.
func (s *Server) UpdatePaymentStatus(ctx echo.Context) error {
	requesterID, ok := requesterFromHeader(ctx)
	if !ok {
		return nil
	}

	orderID, ok := idFromPath(ctx)
	if !ok {
		return nil
	}

	var request UpdatePaymentStatusRequest
	if bindErr := ctx.Bind(&request); bindErr != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdatePaymentStatusCommand(orderID, requesterID, request.PaymentStatus)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.updatePaymentStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCustomerOrders handles GET /api/v1/customers/:id/orders.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	requesterID, ok := requesterFromHeader(ctx)
	if !ok {
		return nil
	}

	customerID, ok := idFromPath(ctx)
	if !ok {
		return nil
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID, requesterID)
	if err != nil {
		return writeError(ctx, err)
	}

	history, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderSummaryResponse, 0, len(history))
	for _, row := range history {
		response = append(response, OrderSummaryResponse{
			ID:            row.ID.String(),
			OrderNumber:   row.OrderNumber,
			Status:        row.Status,
			PaymentStatus: row.PaymentStatus,
			TotalAmount:   row.TotalAmount,
			ItemCount:     row.ItemCount,
			OrderedAt:     row.OrderedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /api/v1/products - admin only.
func (s *Server) CreateProduct(ctx echo.Context) error {
	requesterID, ok := requesterFromHeader(ctx)
	if !ok {
		return nil
	}

	var request CreateProductRequest
	if bindErr := ctx.Bind(&request); bindErr != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	price, err := decimal.NewFromString(request.Price)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid price: " + request.Price,
		})
	}

	cmd, err := commands.NewCreateProductCommand(
		kernel.NewUUID(),
		requesterID,
		request.SKU,
		request.Name,
		price,
		request.QuantityInStock,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createProductHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ProductResponse{
		ID:              created.ID().String(),
		SKU:             created.SKU(),
		Name:            created.Name(),
		Price:           created.Price(),
		QuantityInStock: created.QuantityInStock(),
		IsActive:        created.IsActive(),
	})
}

// SetProductStock handles PUT /api/v1/products/:id/stock - admin only.
func (s *Server) SetProductStock(ctx echo.Context) error {
	requesterID, ok := requesterFromHeader(ctx)
	if !ok {
		return nil
	}

	productID, ok := idFromPath(ctx)
	if !ok {
		return nil
	}

	var request SetProductStockRequest
	if bindErr := ctx.Bind(&request); bindErr != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSetProductStockCommand(productID, requesterID, request.Quantity)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.setProductStockHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func orderToResponse(placed *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(placed.Items()))
	for _, item := range placed.Items() {
		items = append(items, OrderItemResponse{
			ProductID:  item.ProductID().String(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			TotalPrice: item.TotalPrice(),
		})
	}

	return OrderResponse{
		ID:              placed.ID().String(),
		OrderNumber:     placed.OrderNumber(),
		CustomerID:      placed.CustomerID().String(),
		Status:          placed.Status().String(),
		PaymentStatus:   placed.PaymentStatus().String(),
		TotalAmount:     placed.TotalAmount(),
		ShippingAddress: placed.ShippingAddress(),
		BillingAddress:  placed.BillingAddress(),
		PaymentMethod:   placed.PaymentMethod(),
		Notes:           placed.Notes(),
		OrderedAt:       placed.OrderedAt(),
		ShippedAt:       placed.ShippedAt(),
		DeliveredAt:     placed.DeliveredAt(),
		CancelledAt:     placed.CancelledAt(),
		Items:           items,
	}
}

// requesterFromHeader extracts the caller identity from the X-User-ID header.
// On failure the response has already been written and ok is false.
func requesterFromHeader(ctx echo.Context) (kernel.UUID, bool) {
	raw := ctx.Request().Header.Get(RequesterHeader)
	if raw == "" {
		_ = ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Missing " + RequesterHeader + " header",
		})
		return kernel.UUID{}, false
	}

	requesterID, err := kernel.UUIDFromString(raw)
	if err != nil {
		_ = ctx.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Invalid " + RequesterHeader + " header",
		})
		return kernel.UUID{}, false
	}

	return requesterID, true
}

// idFromPath extracts the :id path parameter as a UUID.
// On failure the response has already been written and ok is false.
func idFromPath(ctx echo.Context) (kernel.UUID, bool) {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		_ = ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid id: " + ctx.Param("id"),
		})
		return kernel.UUID{}, false
	}

	return id, true
}

// writeError maps use case errors onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
