package facehires

import (
	"face_hires/entities"
	"face_hires/options"
)

// transmutation temporarily repurposes a shared ImageProcessing for
// inpainting and knows how to put everything back.
type transmutation struct {
	p            *entities.ImageProcessing
	opts         options.Store
	applyOverlay bool
	snapshot     entities.ProcessingSnapshot
}

// transmute reconfigures p into the img2img inpainting variant, after taking
// the snapshots exit needs. It returns nil when face restoration is already
// active on p; in that case nothing was touched and the caller must back off.
func transmute(p *entities.ImageProcessing, opts options.Store) *transmutation {
	if !p.BeginFaceHires() {
		return nil
	}

	t := &transmutation{
		p:            p,
		opts:         opts,
		applyOverlay: opts.ApplyOverlay(),
		snapshot:     p.Snapshot(),
	}

	// The backend must composite the inpainted region back onto the base
	// image rather than replace it.
	opts.SetApplyOverlay(true)
	p.ToInpainting()

	return t
}

// exit restores the overlay option and every snapshotted field, then releases
// the guard. It must run on every exit path, including pipeline failure.
func (t *transmutation) exit() {
	t.p.RestoreSnapshot(t.snapshot)
	t.opts.SetApplyOverlay(t.applyOverlay)
	t.p.EndFaceHires()
}
