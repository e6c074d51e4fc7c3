package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerlist/dealerlist-backend/internal/app/model"
	"github.com/dealerlist/dealerlist-backend/internal/app/service"
	apperrors "github.com/dealerlist/dealerlist-backend/internal/errors"
	"github.com/dealerlist/dealerlist-backend/internal/middleware"
)

type VerificationController struct {
	dealerService service.DealerService
}

func NewVerificationController(dealerService service.DealerService) *VerificationController {
	return &VerificationController{
		dealerService: dealerService,
	}
}

type VerifyRequest struct {
	Decision string `json:"decision"`
}

// PendingVerification lists dealers still awaiting a decision
// GET /api/v1/verification/pending
func (ctrl *VerificationController) PendingVerification(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	dealers, stats, err := ctrl.dealerService.PendingVerification(c.Query("search"))
	if err != nil {
		log.Error("Failed to fetch pending verifications", err, nil)
		apperrors.Internal(c, "Failed to fetch pending verifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dealers":   dealers,
		"pending":   stats.Pending,
		"completed": stats.Completed,
	})
}

// Verify records a verification decision for one dealer
// POST /api/v1/verification/:id
func (ctrl *VerificationController) Verify(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	dealer, err := ctrl.dealerService.Verify(id, model.DealerStatus(req.Decision))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDecision):
			apperrors.BadRequest(c, apperrors.VerificationInvalidDecision, "Decision must be verified or unverified")
		case errors.Is(err, service.ErrDealerNotFound):
			apperrors.NotFound(c, apperrors.DealerNotFound, "Dealer not found")
		case errors.Is(err, service.ErrVerificationInProgress):
			apperrors.Conflict(c, apperrors.VerificationInProgress, "A decision for this dealer is already being recorded")
		default:
			log.Error("Failed to record verification decision", err, map[string]interface{}{
				"dealer_id": id,
			})
			apperrors.Internal(c, "Failed to record verification decision")
		}
		return
	}

	log.Info("Verification decision recorded", map[string]interface{}{
		"dealer_id": dealer.ID,
		"status":    dealer.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Dealer marked as " + string(dealer.Status),
		"dealer":  dealer,
	})
}
