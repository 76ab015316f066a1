package util

// Progress counts completed jobs and keeps a single status line updated on
// stderr when the verbose flag is set. JobDone may be called from any
// goroutine.
type Progress struct {
	errs chan error
	done chan struct{}
}

func NewProgress(total int) Progress {
	p := Progress{make(chan error), make(chan struct{})}
	go func() {
		completed := 0
		errorCount := 0
		for err := range p.errs {
			if err == nil {
				completed += 1
			} else {
				errorCount += 1
				Warnf("%s", err)
			}

			ratio := 100.0 * (float64(completed) / float64(total))
			Verbosef("\r%d of %d pairs aligned (%0.2f%% done, %d errors)",
				completed, total, ratio, errorCount)
		}
		Verbosef("\n")
		p.done <- struct{}{}
	}()
	return p
}

func (p Progress) JobDone(err error) {
	p.errs <- err
}

func (p Progress) Close() {
	close(p.errs)
	<-p.done
}
