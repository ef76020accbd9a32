package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	wsMiddleware := alice.New(app.recoverPanic, app.logRequest)

	mux := pat.New()

	// Categories
	mux.Get("/category", standardMiddleware.ThenFunc(app.categoryHandler.GetAllCategories))
	mux.Post("/category", standardMiddleware.ThenFunc(app.categoryHandler.CreateCategory))
	mux.Post("/category/attributes/add", standardMiddleware.ThenFunc(app.categoryHandler.AddAttribute))
	mux.Post("/category/attributes/remove", standardMiddleware.ThenFunc(app.categoryHandler.RemoveAttribute))
	mux.Get("/category/:id", standardMiddleware.ThenFunc(app.categoryHandler.GetCategoryByID))
	mux.Put("/category/:id", standardMiddleware.ThenFunc(app.categoryHandler.UpdateCategory))
	mux.Del("/category/:id", standardMiddleware.ThenFunc(app.categoryHandler.DeleteCategory))

	// Inventory items
	mux.Get("/inventory/items", standardMiddleware.ThenFunc(app.inventoryItemHandler.GetItems))
	mux.Post("/inventory/items", standardMiddleware.ThenFunc(app.inventoryItemHandler.CreateItem))
	mux.Get("/inventory/items/:id/draft", standardMiddleware.ThenFunc(app.inventoryItemHandler.GetDraft))
	mux.Post("/inventory/items/:id/adjust", standardMiddleware.ThenFunc(app.inventoryItemHandler.AdjustStock))
	mux.Post("/inventory/items/:id/increase", standardMiddleware.ThenFunc(app.inventoryItemHandler.IncreaseStock))
	mux.Get("/inventory/items/:id", standardMiddleware.ThenFunc(app.inventoryItemHandler.GetItemByID))
	mux.Put("/inventory/items/:id", standardMiddleware.ThenFunc(app.inventoryItemHandler.UpdateItem))
	mux.Del("/inventory/items/:id", standardMiddleware.ThenFunc(app.inventoryItemHandler.DeleteItem))
	mux.Get("/inventory/adjustments", standardMiddleware.ThenFunc(app.inventoryItemHandler.GetAdjustments))

	// Item drafts
	mux.Get("/inventory/drafts/new", standardMiddleware.ThenFunc(app.inventoryItemHandler.NewDraft))
	mux.Post("/inventory/drafts/switch-category", standardMiddleware.ThenFunc(app.inventoryItemHandler.SwitchCategory))

	// Category change stream
	mux.Get("/ws/categories", wsMiddleware.ThenFunc(app.categoryHub.ServeWS))

	mux.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.notFound(w)
	})

	return mux
}
