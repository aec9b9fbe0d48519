// Package orderform serves the pizza order form over net/http.
//
// Each browser session (cookie) owns one form.Form. GET renders the form,
// POST applies the submitted fields and submits the draft through the
// configured submit.Submitter:
//
//   - validation errors re-render the form with 422
//   - a second submit while one is in flight answers 409
//   - order API failures re-render with 502 and a failure message
//   - success redirects back to the form (303) which shows the notice once
//
// Requests with "Accept: application/json" get the JSON page document
// instead of HTML and no redirect.
package orderform
