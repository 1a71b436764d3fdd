package dataloader_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-prodattr/pkg/dataloader"
	"github.com/goliatone/go-prodattr/pkg/model"
)

func TestRequest_QueryIsStable(t *testing.T) {
	req := dataloader.NewRequest("products.d", "getAttributeValues", map[string]string{
		"type":   "7",
		"code":   "country",
		"action": "ignored",
	})

	got := req.Query().Encode()
	want := "action=getAttributeValues&code=country&controller=products.d&type=7"
	if got != want {
		t.Fatalf("query mismatch\nwant: %s\n got: %s", want, got)
	}
	if req.Param("code") != "country" {
		t.Fatalf("param lookup failed")
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := (dataloader.Request{}).Validate(); err == nil {
		t.Fatalf("expected validation error for empty action")
	}
}

func TestNewRequest_CopiesParams(t *testing.T) {
	params := map[string]string{"type": "1"}
	req := dataloader.NewRequest("c", "a", params)
	params["type"] = "2"
	if req.Param("type") != "1" {
		t.Fatalf("request params aliased caller map")
	}
}

func TestLoaderFunc_DecodesJSONResponse(t *testing.T) {
	loader := dataloader.LoaderFunc(func(_ context.Context, req dataloader.Request) (dataloader.Response, error) {
		return dataloader.JSONResponse(model.ValueList{Items: []model.AttributeValue{{ID: "1", Label: req.Param("code")}}})
	})

	resp, err := loader.Load(context.Background(), dataloader.NewRequest("products.d", "getAttributeValues", map[string]string{"code": "food"}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var list model.ValueList
	if err := resp.Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []model.AttributeValue{{ID: "1", Label: "food"}}
	if diff := cmp.Diff(want, list.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}

	if err := dataloader.NewResponse(nil).Decode(&list); err == nil {
		t.Fatalf("expected error decoding empty response")
	}
}

func TestNewLoaderOptions(t *testing.T) {
	opts := dataloader.NewLoaderOptions(
		dataloader.WithEndpoint(" http://backend/rpc "),
		dataloader.WithRateLimit(5, 0),
		dataloader.WithHeader("X-Requested-With", "XMLHttpRequest"),
		nil,
	)
	if opts.Endpoint != "http://backend/rpc" {
		t.Fatalf("endpoint not trimmed: %q", opts.Endpoint)
	}
	if opts.Limiter == nil || opts.Limiter.Burst() != 1 {
		t.Fatalf("expected limiter with burst 1")
	}
	if opts.Headers["X-Requested-With"] != "XMLHttpRequest" {
		t.Fatalf("header not recorded")
	}
	if opts.Logger == nil {
		t.Fatalf("expected default logger")
	}
}
