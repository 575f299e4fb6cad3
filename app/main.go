package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jacksonzamorano/skiff/skiff-exchange"
	"github.com/jacksonzamorano/skiff/skiff-http"
)

type AppState struct {
	Pool *pgxpool.Pool
}

type SessionPayload struct {
	AccountId int64 `json:"account_id"`
}

func index(req *skiff_http.HttpRequest) skiff_http.IntoResp {
	return skiff_http.Html("<h1>skiff</h1><p>It works.</p>")
}

func health(req *skiff_http.HttpRequest, state AppState) skiff_http.IntoResp {
	if err := state.Pool.Ping(context.Background()); err != nil {
		return skiff_http.ErrorMessageResponse("database unreachable")
	}
	return skiff_http.Json{Value: map[string]any{"ok": true}}
}

func user(req *skiff_http.HttpRequest, state AppState, params map[string]string) skiff_http.IntoResp {
	var name string
	err := state.Pool.QueryRow(
		context.Background(),
		"SELECT name FROM accounts WHERE id = $1",
		params["id"],
	).Scan(&name)
	if err != nil {
		return skiff_http.NotFoundResponse("no such account")
	}
	return skiff_http.Json{Value: map[string]any{"id": params["id"], "name": name}}
}

func login(req *skiff_http.HttpRequest, state AppState) skiff_http.IntoResp {
	body, err := skiff_http.FromJson[SessionPayload](req)
	if err != nil {
		return skiff_http.TextResponse{Status: skiff_http.StatusBadRequest, Body: "expected a JSON body"}
	}
	token, err := skiff_exchange.EncodeJson(body)
	if err != nil {
		return skiff_http.ErrorMessageResponse("could not issue token")
	}
	cookie := skiff_http.NewCookie("session", token)
	cookie.SameSite = skiff_http.SameSiteLax
	cookie.Path = "/"
	return skiff_http.CookieResponse{Status: skiff_http.StatusOK, Cookie: cookie, Body: "signed in"}
}

func whoami(req *skiff_http.HttpRequest) skiff_http.IntoResp {
	token, ok := req.Cookies()["session"]
	if !ok {
		return skiff_http.StatusUnauthorized
	}
	payload, err := skiff_exchange.DecodeJson[SessionPayload](token)
	if err != nil {
		return skiff_http.StatusUnauthorized
	}
	return skiff_http.Json{Value: payload}
}

func missing(req *skiff_http.HttpRequest) skiff_http.IntoResp {
	return skiff_http.TextResponse{Status: skiff_http.StatusNotFound, Body: "nothing here"}
}

func main() {
	pool, err := pgxpool.New(context.Background(), os.Getenv("DATABASE_URL"))
	if err != nil {
		os.Exit(1)
	}
	defer pool.Close()

	app := skiff_http.NewApplication[AppState]("localhost:8080")
	app.WithState(AppState{Pool: pool})
	app.WithFallback(skiff_http.Bare[AppState](missing))

	routes := map[string]skiff_http.Handler[AppState]{
		"/":         skiff_http.Bare[AppState](index),
		"/health":   skiff_http.WithState(health),
		"/user/:id": skiff_http.WithStateAndExtract(user),
		"/login":    skiff_http.WithState(login),
		"/whoami":   skiff_http.Bare[AppState](whoami),
	}
	for path, handler := range routes {
		if err := app.AddHandler(path, handler); err != nil {
			app.Logger.Fatal(err)
		}
	}

	if err := app.Start(); err != nil {
		app.Logger.Fatal(err)
	}
}
