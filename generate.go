//go:generate go run ./internal/tools/soapgen -root .
//go:generate go run ./internal/tools/bootstrapgen -o deploy -force
//go:generate go run ./internal/tools/versiongen -containerfile deploy/Containerfile

package jirasoap
