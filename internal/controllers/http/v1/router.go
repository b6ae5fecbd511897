package http

import (
	"context"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"weather-history/internal/models"
	"weather-history/internal/services/history"
	"weather-history/pkg/logger"
)

// HistoryService is everything the HTTP layer needs from the search
// history service.
type HistoryService interface {
	Lookup(ctx context.Context, req history.LookupRequest) (*history.Report, error)
	Search(ctx context.Context, req history.SearchRequest) (*models.SearchRecord, error)
	Get(ctx context.Context, id int64) (*models.SearchRecord, error)
	List(ctx context.Context, limit int) ([]models.SearchQuery, error)
	Update(ctx context.Context, id int64, req history.UpdateRequest) (*models.SearchRecord, error)
	Refresh(ctx context.Context, id int64) (*models.SearchRecord, error)
	Delete(ctx context.Context, id int64) error
	WriteJSON(ctx context.Context, w io.Writer, id int64) error
	WriteCSV(ctx context.Context, w io.Writer, id int64) error
}

type routes struct {
	service  HistoryService
	validate *validator.Validate
	l        *logger.Logger
}

func NewRouter(
	app *fiber.App,
	historyService HistoryService,
	l *logger.Logger,
) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	r := &routes{
		service:  historyService,
		validate: v,
		l:        l,
	}

	// Swagger UI, backed by the document registered in the docs package
	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	app.Get("/weather", r.handleWeatherCall)

	searches := app.Group("/searches")
	searches.Post("/", r.handleCreateSearch)
	searches.Get("/", r.handleListSearches)
	searches.Get("/:id", r.handleGetSearch)
	searches.Put("/:id", r.handleUpdateSearch)
	searches.Post("/:id/refresh", r.handleRefreshSearch)
	searches.Delete("/:id", r.handleDeleteSearch)

	export := app.Group("/export")
	export.Get("/json", r.handleExportJSON)
	export.Get("/csv", r.handleExportCSV)
}
