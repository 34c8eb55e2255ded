// Package reqctx carries request-scoped metadata from the HTTP middleware to
// the services handling the request.
//
// The request id middleware stores a RequestMeta for every request:
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{
//	    RequestID:   "abc-123",
//	    ClientIP:    "192.168.1.1",
//	    UserAgent:   "Mozilla/5.0",
//	    RequestedAt: time.Now(),
//	})
//
// Services read it back for log correlation:
//
//	logger.InfoContext(ctx, "dispatched", reqctx.LogAttrs(ctx)...)
package reqctx
