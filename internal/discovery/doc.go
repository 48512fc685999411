// Package discovery finds customer APIs advertised over mDNS.
//
// Services register as "_customerapi._tcp" in the "local." domain with a
// "path" TXT record naming the collection path. `custdesk serve --advertise`
// registers the development service this way.
//
//	services, err := discovery.ScanForServices(ctx, 5*time.Second)
//	if err != nil {
//	    return err
//	}
//	for _, svc := range services {
//	    fmt.Println(svc.BaseURL())
//	}
package discovery
