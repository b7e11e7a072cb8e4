package providers

import "time"

// shutdownTimeout bounds how long a provider's Shutdown may block before the
// process gives up and exits anyway.
const shutdownTimeout = 30 * time.Second
