// Package types contains common types shared by the sip, header and uri packages.
package types
