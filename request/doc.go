// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Plan (describes a logical HTTP
request) and Execution (describes the state of a Plan execution).

A Plan looks like a stripped-down http.Request: a method, a URL, a
header and a body.Body. Create one and hand it to a client:

	p, err := request.NewPlan("POST", "https://example.com/upload", data)
	...
	e, err := client.Do(p)
	...

A plan may be assigned a context to bound or cancel its whole
execution, including every redirect hop:

	p, err := request.NewPlanWithContext(ctx, "GET", "https://example.com", nil)

Execution is both the result of a plan execution and the input of the
client's event handlers. Besides the final response and body, it
records the method, URL and header of the current hop and the URLs
visited while following redirects.
*/
package request
