package http

import (
	"net/http"

	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type placeOrderRequest struct {
	OrderID  string `json:"orderId"`
	Delivery struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
		District string `json:"district"`
		Thana    string `json:"thana"`
		Password string `json:"password"`
	} `json:"delivery"`
	FileData struct {
		File string `json:"file"`
	} `json:"fileData"`
	CoverImages struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	} `json:"coverImages"`
	Payment struct {
		Method        string          `json:"method"`
		TransactionID string          `json:"transactionId"`
		TotalCost     decimal.Decimal `json:"totalCost"`
		Voucher       string          `json:"voucher"`
	} `json:"payment"`
	Preferences order.Preferences `json:"preferences"`
}

type placeOrderResponse struct {
	ID      string `json:"id"`
	OrderID string `json:"orderId"`
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := req.toCommand(c.RealIP())
	if err != nil {
		return s.fail(c, err)
	}

	id, err := s.handlers.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, placeOrderResponse{ID: id.String(), OrderID: cmd.Code().String()})
}

func (r placeOrderRequest) toCommand(ipAddress string) (commands.PlaceOrderCommand, error) {
	code, err := kernel.NewOrderCode(r.OrderID)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	credential, err := order.NewAccessCredential(r.Delivery.Password)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	delivery, err := order.NewDelivery(r.Delivery.Name, r.Delivery.Phone, r.Delivery.Address,
		r.Delivery.District, r.Delivery.Thana, credential)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	files, err := order.ParseFileSet(r.FileData.File, r.CoverImages.Front, r.CoverImages.Back)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	payment, err := order.NewPayment(r.Payment.Method, r.Payment.TransactionID, r.Payment.TotalCost, r.Payment.Voucher)
	if err != nil {
		return commands.PlaceOrderCommand{}, err
	}
	return commands.NewPlaceOrderCommand(code, delivery, files, payment, r.Preferences, ipAddress)
}

// SoftDeleteOrder handles DELETE /api/v1/orders/:code.
func (s *Server) SoftDeleteOrder(c echo.Context) error {
	code, err := kernel.NewOrderCode(c.Param("code"))
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewSoftDeleteOrderCommand(code)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.handlers.SoftDeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

type verifyAccessRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type verifyAccessResponse struct {
	OrderID string `json:"orderId"`
}

// VerifyOrderAccess handles POST /api/v1/orders/access.
func (s *Server) VerifyOrderAccess(c echo.Context) error {
	var req verifyAccessRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	query, err := queries.NewVerifyOrderAccessQuery(req.Phone, req.Password)
	if err != nil {
		return s.fail(c, err)
	}

	resp, err := s.handlers.VerifyOrderAccess.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, verifyAccessResponse{OrderID: resp.Code})
}
