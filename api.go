package mandel

import "context"

//go:generate irpc api.go

// FrameProvider renders whole images for remote clients.
type FrameProvider interface {
	// RenderFrame renders c and returns the finished image. Bands that failed
	// are listed in the frame, the call itself only fails when nothing was rendered.
	RenderFrame(ctx context.Context, c RenderConfig) (Frame, error)
}
