// Package checkout turns the cart and the shipping/payment form into an
// order.
//
// The Coordinator allows one submission at a time: a second Submit while one
// is pending is rejected with ErrSubmissionInProgress, never queued. An empty
// cart blocks submission and points the caller to the catalog. On success the
// cart is cleared; on failure it is left untouched and nothing is retried.
//
//	co, _ := checkout.New(cartStore, orderService)
//	form := co.Prefill(sessions.Current())
//	form.CustomerAddress = "12 Hang Bac, Ha Noi"
//	res := co.Submit(ctx, form)
//	if !res.Success {
//	    showError(res.Message)
//	}
package checkout
