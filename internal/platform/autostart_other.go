//go:build !linux

package platform

func (service *platformService) EnableAutostart(appName, execPath string) error {
	return ErrUnsupported
}

func (service *platformService) DisableAutostart(appName string) error {
	return ErrUnsupported
}
