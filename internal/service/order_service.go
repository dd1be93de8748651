package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"print-kart/internal/events"
	"print-kart/internal/model"
	"print-kart/internal/repository"
	"print-kart/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	complaintUploadDir = "complaints"
	maxComplaintImages = 5

	defaultShippingCountry = "India"
	defaultPaymentMethod   = "cod"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	cartRepo      repository.CartRepository
	complaintRepo repository.ComplaintRepository
	store         storage.Store
	publisher     events.Publisher
	logger        zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	complaintRepo repository.ComplaintRepository,
	store storage.Store,
	publisher events.Publisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		cartRepo:      cartRepo,
		complaintRepo: complaintRepo,
		store:         store,
		publisher:     publisher,
		logger:        logger.With().Str("service", "order").Logger(),
	}
}

// Place atomically places an order. Every product row is locked before its
// stock is checked, so concurrent placements of the last unit serialize and
// exactly one succeeds. Any failure rolls the whole transaction back.
func (s *orderService) Place(ctx context.Context, userID int64, req *model.PlaceOrderRequest) (*model.Order, error) {
	if err := validatePlaceOrderRequest(req); err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	orderID := uuid.New()
	items := make([]model.OrderItem, 0, len(req.Items))
	subtotal := decimal.Zero

	for _, line := range req.Items {
		var product *model.Product
		product, err = s.productRepo.LockForUpdate(ctx, tx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to place order: %w", err)
		}
		if product == nil || !product.IsActive {
			err = model.NewNotFoundError("Product")
			return nil, err
		}
		if product.StockQuantity < line.Quantity {
			s.logger.Warn().
				Int64("user_id", userID).
				Int64("product_id", product.ID).
				Int("requested", line.Quantity).
				Int("available", product.StockQuantity).
				Msg("insufficient stock")
			err = model.NewInsufficientStockError(product.Name, product.StockQuantity)
			return nil, err
		}

		price := product.CurrentPrice()
		lineSubtotal := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineSubtotal)

		items = append(items, model.OrderItem{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       price,
			Quantity:    line.Quantity,
			Subtotal:    lineSubtotal,
		})

		if err = s.productRepo.DecrementStock(ctx, tx, product.ID, line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to place order: %w", err)
		}
	}

	country := strings.TrimSpace(req.ShippingCountry)
	if country == "" {
		country = defaultShippingCountry
	}
	paymentMethod := strings.TrimSpace(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	order := &model.Order{
		ID:              orderID,
		UserID:          userID,
		OrderNumber:     newOrderNumber(now),
		Status:          model.OrderStatusPending,
		Subtotal:        subtotal,
		Tax:             decimal.Zero,
		Shipping:        decimal.Zero,
		Total:           subtotal,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   model.PaymentStatusPending,
		TransactionID:   newTransactionID(),
		InvoiceID:       newInvoiceID(now),
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingState:   req.ShippingState,
		ShippingZip:     req.ShippingZip,
		ShippingCountry: country,
		Phone:           req.Phone,
	}

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if err = s.orderRepo.CreateItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if err = s.cartRepo.ClearTx(ctx, tx, userID); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to commit order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	order.Items = items

	if pubErr := s.publisher.PublishOrderCreated(ctx, order); pubErr != nil {
		// The order is already committed; downstream consumers catch up later.
		s.logger.Warn().Err(pubErr).Str("order_id", orderID.String()).Msg("failed to publish order event")
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("order_number", order.OrderNumber).
		Int64("user_id", userID).
		Int("item_count", len(items)).
		Msg("order placed")
	return order, nil
}

// List retrieves the user's orders newest first.
func (s *orderService) List(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// Get retrieves one of the user's orders with items.
func (s *orderService) Get(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.NewNotFoundError("Order")
	}
	return order, nil
}

// RaiseTicket files a complaint against a product within one of the user's
// orders. Ownership and item membership are checked together; anything that
// fails the check is reported as not found. Image uploads are best effort:
// a failed upload is logged and skipped, never failing the ticket.
func (s *orderService) RaiseTicket(ctx context.Context, userID int64, req *model.RaiseTicketRequest, images []Upload) (*model.Complaint, error) {
	v := model.NewValidationError()
	if req.OrderID == uuid.Nil {
		v.Add("order_id", "Order is required")
	}
	if req.ProductID <= 0 {
		v.Add("product_id", "Product is required")
	}
	if strings.TrimSpace(req.IssueType) == "" {
		v.Add("issue_type", "Issue type is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		v.Add("description", "Description is required")
	}
	if len(images) > maxComplaintImages {
		v.Add("images", fmt.Sprintf("At most %d images are allowed", maxComplaintImages))
	}
	if v.HasErrors() {
		return nil, v
	}

	productName, ok, err := s.orderRepo.ItemProductName(ctx, req.OrderID, userID, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to raise ticket: %w", err)
	}
	if !ok {
		return nil, model.NewNotFoundError("Order")
	}

	paths := make([]string, 0, len(images))
	for _, img := range images {
		path, err := s.store.Save(ctx, complaintUploadDir, img.Filename, img.Content)
		if err != nil {
			s.logger.Warn().Err(err).Str("filename", img.Filename).Msg("failed to store complaint image, skipping")
			continue
		}
		paths = append(paths, path)
	}

	complaint := &model.Complaint{
		UserID:      userID,
		OrderID:     req.OrderID,
		ProductID:   req.ProductID,
		ProductName: productName,
		IssueType:   strings.TrimSpace(req.IssueType),
		Description: strings.TrimSpace(req.Description),
		Images:      paths,
		Status:      model.ComplaintStatusPending,
	}

	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, fmt.Errorf("failed to raise ticket: %w", err)
	}

	s.logger.Info().
		Int64("complaint_id", complaint.ID).
		Str("order_id", req.OrderID.String()).
		Int64("product_id", req.ProductID).
		Msg("complaint filed")
	return complaint, nil
}

func validatePlaceOrderRequest(req *model.PlaceOrderRequest) error {
	v := model.NewValidationError()
	if len(req.Items) == 0 {
		v.Add("items", "Order must contain at least one item")
	}
	for i, item := range req.Items {
		if item.ProductID <= 0 {
			v.Add(fmt.Sprintf("items.%d.product_id", i), "Product is required")
		}
		if item.Quantity < 1 {
			v.Add(fmt.Sprintf("items.%d.quantity", i), "Quantity must be at least 1")
		}
	}
	if strings.TrimSpace(req.ShippingAddress) == "" {
		v.Add("shipping_address", "Shipping address is required")
	}
	if strings.TrimSpace(req.ShippingCity) == "" {
		v.Add("shipping_city", "Shipping city is required")
	}
	if strings.TrimSpace(req.ShippingState) == "" {
		v.Add("shipping_state", "Shipping state is required")
	}
	if strings.TrimSpace(req.ShippingZip) == "" {
		v.Add("shipping_zip", "Shipping ZIP is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		v.Add("phone", "Phone is required")
	}
	if v.HasErrors() {
		return v
	}
	return nil
}

// randomSuffix returns n characters of uppercase hex entropy.
func randomSuffix(n int) string {
	s := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), randomSuffix(8))
}

func newInvoiceID(now time.Time) string {
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), randomSuffix(8))
}

func newTransactionID() string {
	return "TXN-" + randomSuffix(16)
}
