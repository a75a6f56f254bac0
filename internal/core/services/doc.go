// Package services implements the driving ports on top of the driven
// ports: publication catalogue management, PDF upload ingestion, share
// surfaces and the drop-folder watcher.
package services
