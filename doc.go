// Package prodattr renders product attribute inputs for admin forms.
//
// A Module pairs the attribute schema service with the input service:
// LoadDescription resolves attribute captions, RenderInputs fills every
// unclaimed input of a parsed page with select, radio, checkbox or
// complexity widgets built from the backend value lists.
//
//	loader := prodattr.NewLoader(dataloader.WithEndpoint("https://admin.example/rpc"))
//	mod, err := prodattr.New(loader)
//	...
//	doc, _ := page.Parse(r)
//	batch, _ := mod.RenderInputs(ctx, doc, typeID, nil)
//	if err := batch.Wait(ctx); err != nil { ... }
//	doc.Render(w)
package prodattr
