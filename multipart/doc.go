// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package multipart encodes multipart/form-data request bodies as
described in RFC 7578.

A Form is an ordered list of named parts, built with chained calls:

	form := multipart.New().
		Text("username", "gopher").
		Part("avatar", multipart.Bytes(png).FileName("avatar.png"))

Form.Stream produces a body.Body ready to be sent, and
Form.ComputeLength predicts its exact length whenever every part has
a known length.

Parameter values in the Content-Disposition header are percent-encoded
according to the Form's PercentEncoding mode. The filename parameter is
never percent-encoded; it is always quoted, with backslash, double
quote, CR and LF escaped by a preceding backslash, since RFC 7578
section 4.2 forbids the filename* form.
*/
package multipart
