package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"iops/internal/domain/dataset"
	"iops/internal/interfaces/http/middleware"
	"iops/internal/shared/logger"
	"iops/internal/shared/utils"
)

// DatasetHandler registers dataset uploads. The creation route sits behind
// the usage-limit middleware, so a request reaching Create has already
// passed the quota check.
type DatasetHandler struct {
	datasetRepo dataset.Repository
	logger      logger.Interface
}

func NewDatasetHandler(datasetRepo dataset.Repository, logger logger.Interface) *DatasetHandler {
	return &DatasetHandler{
		datasetRepo: datasetRepo,
		logger:      logger,
	}
}

type CreateDatasetRequest struct {
	Name     string               `json:"name" binding:"required,max=255"`
	Filename string               `json:"filename" binding:"required,max=255"`
	RowCount int                  `json:"row_count" binding:"gte=0"`
	Columns  []dataset.ColumnInfo `json:"columns"`
}

type datasetResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Filename    string               `json:"filename"`
	RowCount    int                  `json:"row_count"`
	ColumnCount int                  `json:"column_count"`
	Columns     []dataset.ColumnInfo `json:"columns,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

func (h *DatasetHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	var req CreateDatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	d, err := dataset.NewDataset(userID, req.Name, req.Filename, req.RowCount, req.Columns)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.datasetRepo.Create(c.Request.Context(), d); err != nil {
		h.logger.Errorw("failed to create dataset", "error", err, "user_id", userID)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to create dataset")
		return
	}

	utils.CreatedResponse(c, toDatasetResponse(d))
}

func (h *DatasetHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	datasets, err := h.datasetRepo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorw("failed to list datasets", "error", err, "user_id", userID)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to list datasets")
		return
	}

	out := make([]datasetResponse, 0, len(datasets))
	for _, d := range datasets {
		out = append(out, toDatasetResponse(d))
	}

	utils.SuccessResponse(c, http.StatusOK, "", out)
}

func toDatasetResponse(d *dataset.Dataset) datasetResponse {
	return datasetResponse{
		ID:          d.ID(),
		Name:        d.Name(),
		Filename:    d.Filename(),
		RowCount:    d.RowCount(),
		ColumnCount: d.ColumnCount(),
		Columns:     d.Columns(),
		CreatedAt:   d.CreatedAt(),
	}
}
