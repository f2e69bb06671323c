package common

// This package contains shared utilities and types used across stest packages:
// sentinel errors, exit-code carrying errors and evaluation metrics.
