package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	financeapp "github.com/agrihub/backend/internal/application/finance"
)

// FinanceHandler handles expense, income and summary endpoints
type FinanceHandler struct {
	BaseHandler
	expenseService *financeapp.ExpenseService
	incomeService  *financeapp.IncomeService
	summaryService *financeapp.SummaryService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(
	expenseService *financeapp.ExpenseService,
	incomeService *financeapp.IncomeService,
	summaryService *financeapp.SummaryService,
) *FinanceHandler {
	return &FinanceHandler{
		expenseService: expenseService,
		incomeService:  incomeService,
		summaryService: summaryService,
	}
}

// RecordExpense godoc
// @ID           recordExpense
// @Summary      Record an expense
// @Description  Record an expense. The total is computed server-side as quantity times unit price.
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body financeapp.RecordExpenseRequest true "Expense details"
// @Success      201 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /finance/expenses [post]
func (h *FinanceHandler) RecordExpense(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.Record(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, expense)
}

// GetExpense godoc
// @ID           getExpenseById
// @Summary      Get expense by ID
// @Tags         finance
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /finance/expenses/{id} [get]
func (h *FinanceHandler) GetExpense(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	expense, err := h.expenseService.GetByID(c.Request.Context(), ownerID, expenseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expense)
}

// ListExpenses godoc
// @ID           listExpenses
// @Summary      List expenses
// @Tags         finance
// @Produce      json
// @Param        category query string false "Expense category"
// @Param        field_id query string false "Field ID" format(uuid)
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]financeapp.ExpenseResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /finance/expenses [get]
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter financeapp.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	expenses, total, err := h.expenseService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, expenses, total, filter.Page, filter.PageSize)
}

// UpdateExpense godoc
// @ID           updateExpense
// @Summary      Update an expense
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Param        request body financeapp.UpdateExpenseRequest true "Expense update request"
// @Success      200 {object} APIResponse[financeapp.ExpenseResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /finance/expenses/{id} [put]
func (h *FinanceHandler) UpdateExpense(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	var req financeapp.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), ownerID, expenseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expense)
}

// DeleteExpense godoc
// @ID           deleteExpense
// @Summary      Delete an expense
// @Tags         finance
// @Produce      json
// @Param        id path string true "Expense ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /finance/expenses/{id} [delete]
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), ownerID, expenseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RecordIncome godoc
// @ID           recordIncome
// @Summary      Record income
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body financeapp.RecordIncomeRequest true "Income details"
// @Success      201 {object} APIResponse[financeapp.IncomeResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /finance/income [post]
func (h *FinanceHandler) RecordIncome(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.RecordIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	income, err := h.incomeService.Record(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, income)
}

// GetIncome godoc
// @ID           getIncomeById
// @Summary      Get income record by ID
// @Tags         finance
// @Produce      json
// @Param        id path string true "Income ID" format(uuid)
// @Success      200 {object} APIResponse[financeapp.IncomeResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /finance/income/{id} [get]
func (h *FinanceHandler) GetIncome(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	incomeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid income ID format")
		return
	}

	income, err := h.incomeService.GetByID(c.Request.Context(), ownerID, incomeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, income)
}

// ListIncome godoc
// @ID           listIncome
// @Summary      List income records
// @Tags         finance
// @Produce      json
// @Param        source query string false "Income source"
// @Param        field_id query string false "Field ID" format(uuid)
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]financeapp.IncomeResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /finance/income [get]
func (h *FinanceHandler) ListIncome(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter financeapp.IncomeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	income, total, err := h.incomeService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, income, total, filter.Page, filter.PageSize)
}

// UpdateIncome godoc
// @ID           updateIncome
// @Summary      Update an income record
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id path string true "Income ID" format(uuid)
// @Param        request body financeapp.UpdateIncomeRequest true "Income update request"
// @Success      200 {object} APIResponse[financeapp.IncomeResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /finance/income/{id} [put]
func (h *FinanceHandler) UpdateIncome(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	incomeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid income ID format")
		return
	}

	var req financeapp.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	income, err := h.incomeService.Update(c.Request.Context(), ownerID, incomeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, income)
}

// DeleteIncome godoc
// @ID           deleteIncome
// @Summary      Delete an income record
// @Tags         finance
// @Produce      json
// @Param        id path string true "Income ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /finance/income/{id} [delete]
func (h *FinanceHandler) DeleteIncome(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	incomeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid income ID format")
		return
	}

	if err := h.incomeService.Delete(c.Request.Context(), ownerID, incomeID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Summary godoc
// @ID           financeSummary
// @Summary      Income and expense summary
// @Description  Aggregate totals for the window converted to a single currency (defaults to the trailing 30 days and the account currency)
// @Tags         finance
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        currency query string false "ISO 4217 currency code" default(KES)
// @Success      200 {object} APIResponse[financeapp.FinanceSummary]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /finance/summary [get]
func (h *FinanceHandler) Summary(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	from, to, err := dateRange(c)
	if err != nil {
		h.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	currency := strings.ToUpper(c.Query("currency"))

	summary, err := h.summaryService.Summarize(c.Request.Context(), ownerID, from, to, currency)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
