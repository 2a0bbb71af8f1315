// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package console drives the command router from a line-oriented stream.

Each line names the user issuing the command, followed by the command as it
would be typed in chat:

	ana start
	bia join ana
	ana set login page
	bia estimate 5
	ana truco pause

Replies are written one per command. Failed commands are printed in red when
the output is a terminal, and a prompt is shown when the input is one.
Scripts may contain blank lines and # comments.
*/
package console
