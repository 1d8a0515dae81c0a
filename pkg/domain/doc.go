// Package domain contains the calendar and distribution types shared by the
// distributor, its collaborators and the HTTP layer. These types carry no
// infrastructure concerns and are safe to copy and share between goroutines.
package domain
