// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package reqwest provides an HTTP client which turns one logical request
into as many hops as its redirect policy allows, keeping cookies and
request bodies consistent from hop to hop.

Create a Client to begin making requests.

	client := &reqwest.Client{}
	ex, err := client.Get("https://www.example.com")
	...
	ex, err := client.Post("https://www.example.com/upload",
		"application/json", &buf)
	...
	ex, err := client.PostForm("http://example.com/form",
		url.Values{"key": {"Value"}, "id": {"123"}})

Keep cookies across requests and redirects with a cookie jar:

	client := &reqwest.Client{
		Jar: cookie.NewStore(),
	}

Upload files and fields with a multipart form:

	form := multipart.New().
		Text("title", "holiday").
		Part("photo", multipart.Bytes(jpeg).FileName("beach.jpg"))
	ex, err := client.PostMultipart("https://example.com/photos", form)

For control over which redirects are followed, set a redirect policy
from package redirect:

	client := &reqwest.Client{
		RedirectPolicy: redirect.Limited(3).Then(redirect.SameHost),
	}

For control over how hops are sent, set a transport. The default
transport adapts a net/http RoundTripper; wrap any transport with
transport.Throttle to rate limit hops:

	client := &reqwest.Client{
		Transport: transport.Throttle(&transport.HTTP{}, rate.NewLimiter(10, 1)),
	}

To hook into the fine-grained details of the client's request execution
logic, install a handler into the appropriate handler chain:

	handlers := &reqwest.HandlerGroup{}
	handlers.PushBack(reqwest.BeforeHop, reqwest.HandlerFunc(
		func(_ reqwest.Event, e *request.Execution) {
			log.Printf("Hop %d to %s", e.Hop, e.URL)
		}),
	)
	client := &reqwest.Client{
		Handlers: handlers,
	}

Package reqwest provides basic interfaces for each method of the
client (Doer, Getter, Header, Poster, FormPoster, MultipartPoster and
IdleCloser); a combined interface that composes all the basic methods
(Executor); and utility functions for working with a Doer (Inflate,
Get, Head, Post, PostForm and PostMultipart).
*/
package reqwest
