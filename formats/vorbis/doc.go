// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis ("ogg") through
// github.com/jfreymuth/oggvorbis. Channel count and sample rate come from
// the identification header; samples are already float32.
package vorbis
