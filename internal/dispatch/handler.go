package dispatch

import (
	"errors"
	"fmt"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/audit"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/auth"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/database"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/settlement"

	"github.com/gofiber/fiber/v2"
)

type DispatchResponse struct {
	ID          uint   `json:"id"`
	SaleGroupID string `json:"sale_group_id"`

	TransporterName string `json:"transporter_name"`
	VehicleNumber   string `json:"vehicle_number"`
	DriverName      string `json:"driver_name"`

	TotalWeight  float64 `json:"total_weight"`
	Rate         float64 `json:"rate"`
	GrossFreight float64 `json:"gross_freight"`

	AdvancePaid       float64 `json:"advance_paid"`
	DeliveryPaid      float64 `json:"delivery_paid"`
	ShortageDeduction float64 `json:"shortage_deduction"`
	OtherDeduction    float64 `json:"other_deduction"`
	DeductionNote     string  `json:"deduction_note"`

	BalancePending float64 `json:"balance_pending"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
}

func toResponse(rec models.DispatchRecord) DispatchResponse {
	r := Reconcile(rec)
	return DispatchResponse{
		ID:                rec.ID,
		SaleGroupID:       rec.SaleGroupID,
		TransporterName:   rec.TransporterName,
		VehicleNumber:     rec.VehicleNumber,
		DriverName:        rec.DriverName,
		TotalWeight:       rec.TotalWeight,
		Rate:              rec.Rate,
		GrossFreight:      settlement.Round2(rec.GrossFreight),
		AdvancePaid:       settlement.Round2(rec.AdvancePaid),
		DeliveryPaid:      settlement.Round2(rec.DeliveryPaid),
		ShortageDeduction: settlement.Round2(rec.ShortageDeduction),
		OtherDeduction:    settlement.Round2(rec.OtherDeduction),
		DeductionNote:     rec.DeductionNote,
		BalancePending:    settlement.Round2(r.BalancePending),
		Status:            string(r.Status),
		CreatedAt:         rec.CreatedAt.Format("2006-01-02"),
	}
}

// GET /api/dispatches?status=...
func ListDispatchesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.DispatchRecord{})
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var recs []models.DispatchRecord
		if err := dbq.Order("created_at desc, id desc").Find(&recs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list dispatches")
		}

		resp := make([]DispatchResponse, 0, len(recs))
		for _, rec := range recs {
			resp = append(resp, toResponse(rec))
		}
		return c.JSON(resp)
	}
}

type UpdateDispatchRequest struct {
	AdvancePaid       *float64 `json:"advance_paid"`
	DeliveryPaid      *float64 `json:"delivery_paid"`
	ShortageDeduction *float64 `json:"shortage_deduction"`
	OtherDeduction    *float64 `json:"other_deduction"`
	DeductionNote     *string  `json:"deduction_note"`
	TransporterName   *string  `json:"transporter_name"`
	VehicleNumber     *string  `json:"vehicle_number"`
	DriverName        *string  `json:"driver_name"`
}

// PUT /api/dispatches/:id
// Only the four payment fields plus the descriptive ones are editable;
// a rejected edit leaves the stored ledger untouched.
func UpdateDispatchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		var rec models.DispatchRecord
		if err := database.DB.First(&rec, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Dispatch record not found")
		}

		var body UpdateDispatchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := toResponse(rec)
		updated := rec

		edits := []struct {
			field PaymentField
			value *float64
		}{
			{FieldAdvancePaid, body.AdvancePaid},
			{FieldDeliveryPaid, body.DeliveryPaid},
			{FieldShortageDeduction, body.ShortageDeduction},
			{FieldOtherDeduction, body.OtherDeduction},
		}
		for _, e := range edits {
			if e.value == nil {
				continue
			}
			next, err := ApplyPayment(updated, e.field, *e.value)
			if err != nil {
				var over *OverpaymentError
				if errors.As(err, &over) {
					return fiber.NewError(fiber.StatusBadRequest,
						fmt.Sprintf("Payments and deductions (%.2f) cannot exceed gross freight (%.2f)", over.Requested, over.Gross))
				}
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			updated = next
		}

		if body.DeductionNote != nil {
			updated.DeductionNote = *body.DeductionNote
		}
		if body.TransporterName != nil {
			updated.TransporterName = *body.TransporterName
		}
		if body.VehicleNumber != nil {
			updated.VehicleNumber = *body.VehicleNumber
		}
		if body.DriverName != nil {
			updated.DriverName = *body.DriverName
		}

		if err := database.DB.Save(&updated).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update dispatch record")
		}

		userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
		username, _ := c.Locals(auth.CtxUsernameKey).(string)
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			Username:    username,
			EntityType:  "dispatch",
			EntityID:    updated.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Dispatch ledger for group %s updated", updated.SaleGroupID),
			Before:      before,
			After:       toResponse(updated),
		}); logErr != nil {
			fmt.Printf("audit log failed: %v\n", logErr)
		}

		return c.JSON(toResponse(updated))
	}
}
