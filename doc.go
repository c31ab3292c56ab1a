/*
Package spadist serves the built output ("dist") of "Single Page Applications"
(SPAs), supporting client-side DOM routing.

The SPAHandler type implements http.Handler to serve the SPA and its static
resources from any resource provider implementing the fs.FS interface. Request
paths naming regular files get these files served, with a content type derived
from the file name and a caching policy depending on whether the file is a
long-lived static asset (scripts, stylesheets, images, fonts) or a document
that always needs revalidation. Request paths not naming any file are taken to
be client-side routes and get the SPA's index document instead, unless they
look like static assets, which then are a plain 404.

Every response carries a fixed set of security and CORS headers.

The Server type wraps an SPAHandler with access logging and manages listening,
serving, and graceful shutdown, based on a config.Config.
*/
package spadist
