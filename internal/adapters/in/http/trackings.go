package http

import (
	"net/http"
	"time"

	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/domain/model/tracking"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type createTrackingRequest struct {
	OrderID  string `json:"orderId"`
	RecordID string `json:"recordId"`
}

// CreateTracking handles POST /api/v1/trackings for orders placed without a
// tracking record.
func (s *Server) CreateTracking(c echo.Context) error {
	var req createTrackingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	code, err := kernel.NewOrderCode(req.OrderID)
	if err != nil {
		return s.fail(c, err)
	}
	recordID, err := kernel.UUIDFromString(req.RecordID)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCreateTrackingCommand(code, recordID)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.handlers.CreateTracking.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusCreated)
}

type stageProposal struct {
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type advanceTrackingRequest struct {
	Stages map[string]stageProposal `json:"stages"`
}

type advanceTrackingResponse struct {
	Applied []string `json:"applied"`
}

// AdvanceTracking handles PATCH /api/v1/trackings/:code. Unknown stage names
// are ignored; completion times are set by the server.
func (s *Server) AdvanceTracking(c echo.Context) error {
	var req advanceTrackingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	code, err := kernel.NewOrderCode(c.Param("code"))
	if err != nil {
		return s.fail(c, err)
	}

	raw := make(map[string]tracking.StageProposal, len(req.Stages))
	for name, p := range req.Stages {
		raw[name] = tracking.StageProposal{Completed: p.Completed, CompletedAt: p.CompletedAt}
	}
	progress, err := tracking.ParseProgress(raw)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAdvanceTrackingCommand(code, progress)
	if err != nil {
		return s.fail(c, err)
	}

	applied, err := s.handlers.AdvanceTracking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	names := make([]string, 0, len(applied))
	for _, stage := range applied {
		names = append(names, stage.String())
	}
	return c.JSON(http.StatusOK, advanceTrackingResponse{Applied: names})
}

type currentStageResponse struct {
	OrderID string `json:"orderId"`
	Stage   string `json:"stage"`
}

// GetCurrentStage handles GET /api/v1/trackings/:code/stage.
func (s *Server) GetCurrentStage(c echo.Context) error {
	code, err := kernel.NewOrderCode(c.Param("code"))
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetCurrentStageQuery(code)
	if err != nil {
		return s.fail(c, err)
	}

	resp, err := s.handlers.GetCurrentStage.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, currentStageResponse{OrderID: resp.Code, Stage: resp.Stage})
}

type stageView struct {
	Name        string     `json:"name"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

type fileView struct {
	Role string `json:"role"`
	URL  string `json:"url"`
}

type paymentView struct {
	Method    string          `json:"method"`
	TotalCost decimal.Decimal `json:"totalCost"`
	Voucher   string          `json:"voucher,omitempty"`
}

type describeTrackingResponse struct {
	OrderID      string            `json:"orderId"`
	CurrentStage string            `json:"currentStage"`
	Stages       []stageView       `json:"stages"`
	Files        []fileView        `json:"files"`
	Preferences  order.Preferences `json:"preferences"`
	Payment      paymentView       `json:"payment"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// DescribeTracking handles GET /api/v1/trackings/:code.
func (s *Server) DescribeTracking(c echo.Context) error {
	code, err := kernel.NewOrderCode(c.Param("code"))
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewDescribeTrackingQuery(code)
	if err != nil {
		return s.fail(c, err)
	}

	resp, err := s.handlers.DescribeTracking.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	out := describeTrackingResponse{
		OrderID:      resp.Code,
		CurrentStage: resp.CurrentStage,
		Stages:       make([]stageView, 0, len(resp.Stages)),
		Files:        make([]fileView, 0, len(resp.Files)),
		Preferences:  resp.Preferences,
		Payment: paymentView{
			Method:    resp.Payment.Method,
			TotalCost: resp.Payment.TotalCost,
			Voucher:   resp.Payment.Voucher,
		},
		CreatedAt: resp.CreatedAt,
	}
	for _, st := range resp.Stages {
		out.Stages = append(out.Stages, stageView(st))
	}
	for _, f := range resp.Files {
		out.Files = append(out.Files, fileView(f))
	}

	return c.JSON(http.StatusOK, out)
}
