package server

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/vijay-prabhu/resumeats/internal/ats"
	"github.com/vijay-prabhu/resumeats/internal/database"
	"github.com/vijay-prabhu/resumeats/internal/extract"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":   "healthy",
		"profiles": len(s.engine.Catalog().Profiles()),
		"history":  s.db != nil,
	}
	if s.db != nil {
		if err := s.db.Health(c.UserContext()); err != nil {
			status["status"] = "degraded"
			status["error"] = err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(status)
		}
	}
	return c.JSON(status)
}

func (s *Server) handleProfiles(c *fiber.Ctx) error {
	catalog := s.engine.Catalog()
	return c.JSON(fiber.Map{
		"profiles": catalog.Profiles(),
		"sections": catalog.Sections(),
	})
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "No file uploaded")
	}
	if fh.Filename == "" {
		return jsonError(c, fiber.StatusBadRequest, "Empty file uploaded")
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return jsonError(c, fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large. Max size: %d bytes", s.maxBytes))
	}

	f, err := fh.Open()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to extract text: "+err.Error())
	}
	defer f.Close()

	doc, err := extract.ReadDocument(f, fh.Filename, s.readLimit())
	if errors.Is(err, extract.ErrTooLarge) {
		return jsonError(c, fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large. Max size: %d bytes", s.maxBytes))
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to extract text: "+extractionCause(err))
	}
	doc.ContentType = fh.Header.Get(fiber.HeaderContentType)

	text, err := s.extractor.Extract(c.UserContext(), doc)
	if err != nil {
		s.log.WarnContext(c.UserContext(), "extraction failed", "file", fh.Filename, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to extract text: "+extractionCause(err))
	}

	result, err := s.engine.AnalyzeDomain(text, c.FormValue("domain"))
	switch {
	case errors.Is(err, ats.ErrEmptyInput):
		return jsonError(c, fiber.StatusInternalServerError, "No extractable text found in resume")
	case errors.Is(err, ats.ErrUnknownDomain):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		return err
	}

	if s.db != nil {
		a := database.FromResult(fh.Filename, result)
		if err := s.db.CreateAnalysis(c.UserContext(), a); err != nil {
			s.log.ErrorContext(c.UserContext(), "failed to save analysis", "error", err)
		} else {
			c.Set("X-Analysis-ID", a.ID)
		}
	}

	s.log.InfoContext(c.UserContext(), "resume analyzed",
		"file", fh.Filename,
		"domain", result.Domain,
		"score", result.Total,
	)

	return c.JSON(result.Report())
}

// readLimit bounds the document read when no explicit maximum is configured
func (s *Server) readLimit() int64 {
	if s.maxBytes > 0 {
		return s.maxBytes
	}
	return int64(s.app.Config().BodyLimit)
}

func extractionCause(err error) string {
	var ee *extract.ExtractionError
	if errors.As(err, &ee) && ee.Err != nil {
		return ee.Err.Error()
	}
	return err.Error()
}

func jsonError(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
