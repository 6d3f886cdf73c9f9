// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package remote is the HTTP client for the election's remote services.

	c := remote.NewClient(http.DefaultClient, remote.Endpoints{
		TallyURL:      "https://tally.example/api/submit-vote",
		ValidationURL: "https://tally.example/api/validate-voter",
		CatalogURL:    "https://tally.example/categories.json",
	})

Non-2xx answers come back as *StatusError carrying the status code and the
service's "message" field. StatusError implements retry.StatusCoder, so 4xx
answers are never retried, and UserMessage for display to the voter.

LoadCatalog accepts either {"categories": [...]} or a bare array, from an
http(s) URL or a local file, and reports any structural problem as
ErrMalformedCatalog.
*/
package remote
