package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tukarkoin/tukar_koin_app/internal/core/domain"
	portssvc "github.com/tukarkoin/tukar_koin_app/internal/core/ports/services"
	"github.com/tukarkoin/tukar_koin_app/internal/dto"
	"github.com/tukarkoin/tukar_koin_app/internal/middleware"
)

// transactionHandler handles HTTP requests related to exchange transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.recordTransaction)
		transactions.GET("/:id", h.getTransaction)
		transactions.GET("", h.listMyTransactions)
		transactions.GET("/user/:nik", middleware.RequireRole(string(domain.RoleAdmin)), h.listUserTransactions)
	}
}

// recordTransaction godoc
// @Summary Record an exchange transaction
// @Description Records an exchange. Field transactions are validated against the caller's ACTIVE assignment float all-or-nothing; walk-ins adjust the warehouse directly
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.RecordTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 422 {object} map[string]interface{} "No active assignment, or insufficient stock for a denomination"
// @Failure 500 {object} map[string]string "Failed to record transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	callerNik, ok := middleware.GetUserNikFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.RecordTransaction(c.Request.Context(), req, callerNik)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves one transaction with its detail lines
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listMyTransactions godoc
// @Summary List the caller's transactions
// @Description Retrieves the authenticated user's transactions newest first with cursor pagination
// @Tags transactions
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param nextToken query string false "Cursor token from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listMyTransactions(c *gin.Context) {
	callerNik, ok := middleware.GetUserNikFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	h.listTransactions(c, callerNik)
}

// listUserTransactions godoc
// @Summary List a user's transactions
// @Description Retrieves any user's transactions newest first (admin only)
// @Tags transactions
// @Produce json
// @Param nik path string true "User NIK"
// @Param limit query int false "Limit number of results" default(20)
// @Param nextToken query string false "Cursor token from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /transactions/user/{nik} [get]
func (h *transactionHandler) listUserTransactions(c *gin.Context) {
	h.listTransactions(c, c.Param("nik"))
}

func (h *transactionHandler) listTransactions(c *gin.Context, userNik string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.transactionService.ListTransactionsForUser(c.Request.Context(), userNik, params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
