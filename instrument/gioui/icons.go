package gioui

import (
	"fmt"

	"gioui.org/widget"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

var (
	loadingIcon = mustIcon(icons.FileCloudDownload)
	errorIcon   = mustIcon(icons.AlertErrorOutline)
)

func mustIcon(data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		panic(fmt.Errorf("invalid icon: %w", err))
	}
	return icon
}
