// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/online-voting/middleware"
)

type action struct {
	method  string
	handler http.HandlerFunc
}

// ActionDispatcher routes on the "action" query parameter and the HTTP
// method, the way the api.php front controller did.
type ActionDispatcher struct {
	actions map[string]action
	aliases map[string]string
}

func NewActionDispatcher() *ActionDispatcher {
	return &ActionDispatcher{
		actions: make(map[string]action),
		aliases: make(map[string]string),
	}
}

// Handle registers handler for the action name and method.
func (d *ActionDispatcher) Handle(name, method string, handler http.HandlerFunc) {
	d.actions[name] = action{method: method, handler: handler}
}

// Alias makes alias resolve to the registered action target.
func (d *ActionDispatcher) Alias(alias, target string) {
	d.aliases[alias] = target
}

func (d *ActionDispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w = middleware.LegacyErrors(w)

	name := r.URL.Query().Get("action")
	if target, ok := d.aliases[name]; ok {
		name = target
	}

	a, ok := d.actions[name]
	if !ok || a.method != r.Method {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid action or method")
		return
	}

	a.handler(w, r)
}
