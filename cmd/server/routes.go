package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"github.com/okayfine/billsplit/internal/metrics"
	"github.com/okayfine/billsplit/internal/middleware"
	"github.com/okayfine/billsplit/internal/service"
)

func routes(svc *service.LedgerService) http.Handler {
	standard := alice.New(
		middleware.RecoverPanic,
		middleware.LogRequest,
		metrics.Instrument,
		middleware.SecureHeaders,
		middleware.JSONResponse,
	)

	mux := pat.New()

	// Ledger sessions
	mux.Post("/ledgers", standard.ThenFunc(svc.CreateLedger))
	mux.Get("/ledgers/:id", standard.ThenFunc(svc.GetLedger))
	mux.Del("/ledgers/:id", standard.ThenFunc(svc.DeleteLedger))
	mux.Post("/ledgers/:id/reset", standard.ThenFunc(svc.ResetLedger))

	// Items
	mux.Post("/ledgers/:id/items", standard.ThenFunc(svc.AddItem))
	mux.Put("/ledgers/:id/items/:item_id", standard.ThenFunc(svc.UpdateItem))
	mux.Del("/ledgers/:id/items/:item_id", standard.ThenFunc(svc.RemoveItem))

	// Users
	mux.Post("/ledgers/:id/users", standard.ThenFunc(svc.AddUser))
	mux.Del("/ledgers/:id/users/:user_id", standard.ThenFunc(svc.RemoveUser))

	// Assignments
	mux.Post("/ledgers/:id/items/:item_id/assignments/:user_id", standard.ThenFunc(svc.ToggleAssignment))

	// Derived views
	mux.Get("/ledgers/:id/shares", standard.ThenFunc(svc.GetShares))
	mux.Get("/ledgers/:id/summary", standard.ThenFunc(svc.GetSummary))

	// Uploads
	mux.Post("/ledgers/:id/upload", standard.ThenFunc(svc.Upload))

	mux.Get("/health", standard.ThenFunc(svc.Health))
	mux.Get("/metrics", metrics.Handler())

	return mux
}
