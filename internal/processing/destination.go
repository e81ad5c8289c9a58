package processing

import (
	"context"
	"sync"
)

// DestinationRequest asks the caller where to save the first rendered file
// of a batch. The batch blocks until Respond or Decline is called; only the
// first reply counts.
type DestinationRequest struct {
	Filename      string
	InputPath     string
	SuggestedPath string

	reply chan destinationReply
	once  sync.Once
}

type destinationReply struct {
	path     string
	accepted bool
}

func newDestinationRequest(inputPath, filename, suggested string) *DestinationRequest {
	return &DestinationRequest{
		Filename:      filename,
		InputPath:     inputPath,
		SuggestedPath: suggested,
		reply:         make(chan destinationReply, 1),
	}
}

// Respond accepts path as the destination. An empty path accepts the
// suggestion. It reports whether this was the first reply.
func (r *DestinationRequest) Respond(path string) bool {
	if path == "" {
		path = r.SuggestedPath
	}
	return r.send(destinationReply{path: path, accepted: true})
}

// Decline stops the batch. It reports whether this was the first reply.
func (r *DestinationRequest) Decline() bool {
	return r.send(destinationReply{})
}

func (r *DestinationRequest) send(rep destinationReply) bool {
	sent := false
	r.once.Do(func() {
		r.reply <- rep
		sent = true
	})
	return sent
}

// wait blocks for the reply. Cancellation of ctx counts as a decline.
func (r *DestinationRequest) wait(ctx context.Context) (string, bool) {
	select {
	case rep := <-r.reply:
		return rep.path, rep.accepted
	case <-ctx.Done():
		r.Decline()
		return "", false
	}
}

// DestinationChooser answers a destination request: the chosen path and
// whether to continue.
type DestinationChooser func(req *DestinationRequest) (string, bool)

// ServeDestinations answers requests with choose until ctx is done or the
// channel is closed.
func ServeDestinations(ctx context.Context, requests <-chan *DestinationRequest, choose DestinationChooser) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-requests:
			if !ok {
				return
			}
			if path, accepted := choose(req); accepted {
				req.Respond(path)
			} else {
				req.Decline()
			}
		}
	}
}
