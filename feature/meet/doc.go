// Package meet administers meets: listing, manual creation, alias and
// category management, and deletion with cascading result cleanup.
package meet
