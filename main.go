/*
main.go

Copyright © 2025 Code Monkey Cybersecurity
Contact: git@cybermonkey.net.au

This file is part of passgen.

This software is dual-licensed under the Do No Harm License
and the GNU Affero General Public License v3 (AGPL-3.0-or-later).
You may use, modify, and distribute it under the terms of either license.

See LICENSE.agpl and LICENSE.dnh for full details.
*/
package main

import (
	"github.com/CodeMonkeyCybersecurity/passgen/cmd"
	"github.com/CodeMonkeyCybersecurity/passgen/pkg/logger"
)

func main() {
	// console logging until flags and config select the real level
	logger.InitFallback()

	cmd.Execute()
}
