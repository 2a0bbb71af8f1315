// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package report renders planning truco state as plain chat text.

Rendering is pure: a Renderer only reads the values it is given plus its
clock, which makes relative timestamps reproducible in tests.

	r := report.NewRenderer("%Y-%m-%d %H:%M", 5, time.Now)
	fmt.Println(r.SessionStatus(session))

# Statistics

Story summaries list every vote in vote order and, when at least one vote
is numeric, a min/avg/max/stdev line. Numbers keep at most two decimals:

	min/avg/max/stdev: 5/6.5/8/1.5

# Timestamps

Timestamps use a strftime layout (go-strftime) followed by a humanized
relative time (go-humanize), e.g. "2025-03-14 10:00:00 (3 minutes ago)".
*/
package report
