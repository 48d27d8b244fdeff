// Package master serves the small reference tables everything else keys
// on: grains, warehouses and contact parties, plus the firm's bank
// details for invoices.
package master

import (
	"fmt"
	"strings"

	"github.com/shashanknagariya/NagariyaTradersBilling/internal/audit"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/auth"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/config"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/database"
	"github.com/shashanknagariya/NagariyaTradersBilling/internal/models"

	"github.com/gofiber/fiber/v2"
)

func currentUser(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	username, _ := c.Locals(auth.CtxUsernameKey).(string)
	return userID, username
}

func logChange(c *fiber.Ctx, entity string, id uint, action models.AuditAction, desc string, before, after any) {
	userID, username := currentUser(c)
	if err := audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		Username:    username,
		EntityType:  entity,
		EntityID:    id,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	}); err != nil {
		fmt.Printf("audit log failed: %v\n", err)
	}
}

// -------------------------
// Grains
// -------------------------

type GrainRequest struct {
	Name           string  `json:"name"`
	HindiName      string  `json:"hindi_name"`
	StandardBharti float64 `json:"standard_bharti"`
}

func CreateGrainHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GrainRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}
		if body.StandardBharti < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "standard_bharti cannot be negative")
		}
		if body.StandardBharti == 0 {
			body.StandardBharti = 60
		}

		grain := models.Grain{
			Name:           body.Name,
			HindiName:      body.HindiName,
			StandardBharti: body.StandardBharti,
		}
		if err := database.DB.Create(&grain).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Grain already exists")
		}

		logChange(c, "grain", grain.ID, models.AuditActionCreate, fmt.Sprintf("Grain %q added", grain.Name), nil, grain)
		return c.Status(fiber.StatusCreated).JSON(grain)
	}
}

func ListGrainsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var grains []models.Grain
		if err := database.DB.Order("name asc").Find(&grains).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list grains")
		}
		return c.JSON(grains)
	}
}

func UpdateGrainHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var grain models.Grain
		if err := database.DB.First(&grain, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Grain not found")
		}

		var body GrainRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := grain
		if name := strings.TrimSpace(body.Name); name != "" {
			grain.Name = name
		}
		if body.HindiName != "" {
			grain.HindiName = body.HindiName
		}
		if body.StandardBharti > 0 {
			grain.StandardBharti = body.StandardBharti
		}

		if err := database.DB.Save(&grain).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update grain")
		}

		logChange(c, "grain", grain.ID, models.AuditActionUpdate, fmt.Sprintf("Grain %q updated", grain.Name), before, grain)
		return c.JSON(grain)
	}
}

// -------------------------
// Warehouses
// -------------------------

type WarehouseRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func CreateWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body WarehouseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		wh := models.Warehouse{Name: body.Name, Location: body.Location}
		if err := database.DB.Create(&wh).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save warehouse")
		}

		logChange(c, "warehouse", wh.ID, models.AuditActionCreate, fmt.Sprintf("Warehouse %q added", wh.Name), nil, wh)
		return c.Status(fiber.StatusCreated).JSON(wh)
	}
}

func ListWarehousesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var whs []models.Warehouse
		if err := database.DB.Order("name asc").Find(&whs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list warehouses")
		}
		return c.JSON(whs)
	}
}

func UpdateWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var wh models.Warehouse
		if err := database.DB.First(&wh, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Warehouse not found")
		}

		var body WarehouseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := wh
		if name := strings.TrimSpace(body.Name); name != "" {
			wh.Name = name
		}
		if body.Location != "" {
			wh.Location = body.Location
		}

		if err := database.DB.Save(&wh).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update warehouse")
		}

		logChange(c, "warehouse", wh.ID, models.AuditActionUpdate, fmt.Sprintf("Warehouse %q updated", wh.Name), before, wh)
		return c.JSON(wh)
	}
}

// -------------------------
// Contacts
// -------------------------

type ContactRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"` // supplier or buyer
	Phone     string `json:"phone"`
	GSTNumber string `json:"gst_number"`
}

func CreateContactHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ContactRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}
		ctype := models.ContactType(body.Type)
		if ctype != models.ContactTypeSupplier && ctype != models.ContactTypeBuyer {
			return fiber.NewError(fiber.StatusBadRequest, "type must be 'supplier' or 'buyer'")
		}

		contact := models.Contact{
			Name:      body.Name,
			Type:      ctype,
			Phone:     body.Phone,
			GSTNumber: strings.ToUpper(strings.TrimSpace(body.GSTNumber)),
		}
		if err := database.DB.Create(&contact).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save contact")
		}

		logChange(c, "contact", contact.ID, models.AuditActionCreate, fmt.Sprintf("Contact %q (%s) added", contact.Name, contact.Type), nil, contact)
		return c.Status(fiber.StatusCreated).JSON(contact)
	}
}

// GET /api/contacts?type=supplier|buyer
func ListContactsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Contact{})
		if typeFilter := c.Query("type"); typeFilter != "" {
			dbq = dbq.Where("type = ?", typeFilter)
		}

		var contacts []models.Contact
		if err := dbq.Order("name asc").Find(&contacts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list contacts")
		}
		return c.JSON(contacts)
	}
}

func UpdateContactHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var contact models.Contact
		if err := database.DB.First(&contact, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Contact not found")
		}

		var body ContactRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before := contact
		if name := strings.TrimSpace(body.Name); name != "" {
			contact.Name = name
		}
		if body.Type != "" {
			ctype := models.ContactType(body.Type)
			if ctype != models.ContactTypeSupplier && ctype != models.ContactTypeBuyer {
				return fiber.NewError(fiber.StatusBadRequest, "type must be 'supplier' or 'buyer'")
			}
			contact.Type = ctype
		}
		if body.Phone != "" {
			contact.Phone = body.Phone
		}
		if body.GSTNumber != "" {
			contact.GSTNumber = strings.ToUpper(strings.TrimSpace(body.GSTNumber))
		}

		if err := database.DB.Save(&contact).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update contact")
		}

		logChange(c, "contact", contact.ID, models.AuditActionUpdate, fmt.Sprintf("Contact %q updated", contact.Name), before, contact)
		return c.JSON(contact)
	}
}

// -------------------------
// Bank details
// -------------------------

// GET /api/bank-details
// Static firm details from configuration, shown on printed bills.
func BankDetailsHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"firm_name":    cfg.FirmName,
			"firm_address": cfg.FirmAddress,
			"gstin":        cfg.GSTIN,
			"bank_name":    cfg.BankName,
			"account_no":   cfg.BankAccountNo,
			"ifsc":         cfg.BankIFSC,
			"holder_name":  cfg.BankHolder,
		})
	}
}
