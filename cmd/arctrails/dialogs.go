// cmd/arctrails/dialogs.go
// Copyright(c) 2025 arctrails contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"os"

	"github.com/skyviz/arctrails/pkg/log"

	"github.com/ncruces/zenity"
)

// ShowErrorDialog reports an error to the user with a native dialog box;
// these come up rarely enough that it is not worth drawing them ourselves.
func ShowErrorDialog(lg *log.Logger, s string, args ...any) {
	lg.Errorf(s, args...)

	if err := zenity.Error(fmt.Sprintf(s, args...), zenity.Title("arctrails"),
		zenity.ErrorIcon); err != nil {
		lg.Errorf("Unable to show error dialog: %v", err)
	}
}

// ShowFatalErrorDialog is for errors at startup that we can't recover from.
func ShowFatalErrorDialog(lg *log.Logger, s string, args ...any) {
	ShowErrorDialog(lg, s, args...)
	os.Exit(1)
}
