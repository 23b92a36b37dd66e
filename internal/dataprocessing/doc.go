// Package dataprocessing turns raw Seoul transaction rows into the
// normalized dataset and the derived views the dashboard renders: the
// mega-complex comparison restricted to each complex's representative
// unit size, the single-complex detail slice, and monthly price trends.
package dataprocessing
