// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package certgen

import (
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderTable renders the persistent artifacts of a run as a formatted
// markdown table: file name, role, permission mode, and expiry where one
// applies.
func (r *Result) RenderTable() string {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	headers := []string{"File", "Role", "Mode", "Valid Until"}
	table.Header(headers)

	caExpiry := r.CACert.NotAfter.Format("2006-01-02")
	leafExpiry := r.DomainCert.NotAfter.Format("2006-01-02")

	rows := [][]string{
		{filepath.Base(r.Artifacts.CAKey()), "CA private key", "0600", "-"},
		{filepath.Base(r.Artifacts.CACert()), "CA certificate", "0644", caExpiry},
		{filepath.Base(r.Artifacts.DomainKey()), "domain private key", "0600", "-"},
		{filepath.Base(r.Artifacts.DomainCert()), "domain certificate", "0644", leafExpiry},
		{filepath.Base(r.Artifacts.Bundle()), "combined PEM bundle", "0644", leafExpiry},
		{filepath.Base(r.Artifacts.P12()), "PKCS#12 archive", "0600", leafExpiry},
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}
