package main

import (
	"github.com/gofiber/fiber/v2"

	"github.com/WunderSocial/wunder-id/pkg/docscan"
	"github.com/WunderSocial/wunder-id/pkg/errx"
)

type extractRequest struct {
	// DocKey is the storage key of the uploaded document image.
	DocKey string `json:"docKey"`

	// DocumentType is an optional hint: "passport" or "license".
	DocumentType string `json:"documentType,omitempty"`

	// Debug includes extraction diagnostics in the response.
	Debug bool `json:"debug,omitempty"`
}

func handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleExtract runs one document extraction.
func handleExtract(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req extractRequest
		if err := c.BodyParser(&req); err != nil {
			return errx.Wrap(err, "invalid request body", errx.TypeValidation)
		}

		hint := docscan.DocumentTypeUnknown
		switch req.DocumentType {
		case string(docscan.DocumentTypePassport):
			hint = docscan.DocumentTypePassport
		case string(docscan.DocumentTypeLicense):
			hint = docscan.DocumentTypeLicense
		}

		rec, err := container.Engine.Extract(c.UserContext(), req.DocKey, hint)
		if err != nil {
			return err
		}
		if !req.Debug && !container.Config.Docscan.Debug {
			rec.Diagnostics = nil
		}
		return c.JSON(rec)
	}
}
