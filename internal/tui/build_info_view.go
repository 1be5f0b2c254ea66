// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-field-sync/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo, device models.DeviceInfo) string {
	var b strings.Builder

	b.WriteString("Application: fieldsync\n")
	b.WriteString("Version: ")
	b.WriteString(valueOrNA(info.BuildVersion()))
	b.WriteString("\n")
	b.WriteString("Date: ")
	b.WriteString(valueOrNA(info.BuildDate()))
	b.WriteString("\n")
	b.WriteString("Commit: ")
	b.WriteString(valueOrNA(info.BuildCommit()))
	b.WriteString("\n\n")
	b.WriteString("Group: ")
	b.WriteString(valueOrNA(device.GroupID))
	b.WriteString("\n")
	b.WriteString("Device: ")
	b.WriteString(valueOrNA(device.DeviceID))
	b.WriteString("\n")
	b.WriteString("Platform: ")
	b.WriteString(valueOrNA(device.Platform))

	return renderPage("ABOUT", b.String(), "esc: back")
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}
