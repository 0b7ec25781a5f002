package deps

import (
	"context"

	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/integrations/anaconda"
	"github.com/condagraph/condagraph/pkg/integrations/pypi"
)

// anacondaLookup and pypiLookup cover the slice of the registry clients this
// package needs, so tests can substitute fakes.
type anacondaLookup interface {
	FetchPackage(ctx context.Context, channel, pkg string, refresh bool) (*anaconda.PackageInfo, error)
}

type pypiLookup interface {
	FetchPackage(ctx context.Context, pkg string, refresh bool) (*pypi.PackageInfo, error)
}

var (
	_ anacondaLookup = (*anaconda.Client)(nil)
	_ pypiLookup     = (*pypi.Client)(nil)
)

// AnacondaProvider resolves conda packages against the Anaconda.org API,
// reading the depends list of the latest published artifact.
type AnacondaProvider struct {
	client anacondaLookup
}

// NewAnacondaProvider creates an AnacondaProvider around client.
func NewAnacondaProvider(client *anaconda.Client) *AnacondaProvider {
	return &AnacondaProvider{client: client}
}

// Name implements Provider.
func (p *AnacondaProvider) Name() string { return "anaconda" }

// Lookup implements Provider. pip packages are not hosted on Anaconda.org
// and are passed along the chain.
func (p *AnacondaProvider) Lookup(ctx context.Context, pkg conda.Package, refresh bool) ([]string, error) {
	if pkg.Channel == "pip" {
		return nil, ErrNotApplicable
	}
	info, err := p.client.FetchPackage(ctx, pkg.Channel, pkg.Name, refresh)
	if err != nil {
		return nil, err
	}
	return info.Dependencies, nil
}

// PyPIProvider resolves pip packages against the PyPI JSON API.
type PyPIProvider struct {
	client pypiLookup
}

// NewPyPIProvider creates a PyPIProvider around client.
func NewPyPIProvider(client *pypi.Client) *PyPIProvider {
	return &PyPIProvider{client: client}
}

// Name implements Provider.
func (p *PyPIProvider) Name() string { return "pypi" }

// Lookup implements Provider. Only pip-channel packages are looked up here;
// conda builds carry different metadata than the wheels PyPI describes.
func (p *PyPIProvider) Lookup(ctx context.Context, pkg conda.Package, refresh bool) ([]string, error) {
	if pkg.Channel != "pip" {
		return nil, ErrNotApplicable
	}
	info, err := p.client.FetchPackage(ctx, pkg.Name, refresh)
	if err != nil {
		return nil, err
	}
	return info.Dependencies, nil
}
