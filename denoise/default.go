// SPDX-License-Identifier: EPL-2.0

//go:build !cgo || !rnnoise

package denoise

// Default returns PassThrough; build with -tags rnnoise for the real model.
func Default() Backend { return PassThrough() }
