package lobby

// registry is the identity bookkeeping for one lobby: an injective mapping
// from live connections to names, plus the set of active names in insertion
// order for display. Callers hold the lobby lock.
type registry struct {
	conns   map[Conn]string
	names   []string
	nameSet map[string]struct{}
}

func newRegistry() *registry {
	return &registry{
		conns:   make(map[Conn]string),
		nameSet: make(map[string]struct{}),
	}
}

func (r *registry) hasConn(conn Conn) bool {
	_, ok := r.conns[conn]
	return ok
}

func (r *registry) hasName(name string) bool {
	_, ok := r.nameSet[name]
	return ok
}

// add binds a new connection and activates its name
func (r *registry) add(conn Conn, name string) {
	r.conns[conn] = name
	if _, ok := r.nameSet[name]; !ok {
		r.nameSet[name] = struct{}{}
		r.names = append(r.names, name)
	}
}

// rebind binds a connection to a name that is already active, leaving the
// active set untouched (the mid-game reconnect path)
func (r *registry) rebind(conn Conn, name string) {
	r.conns[conn] = name
}

// remove unbinds a connection and deactivates its name. The name is removed
// from the active set even if another connection is still bound to it.
func (r *registry) remove(conn Conn) (string, bool) {
	name, ok := r.conns[conn]
	if !ok {
		return "", false
	}
	delete(r.conns, conn)
	if _, active := r.nameSet[name]; active {
		delete(r.nameSet, name)
		for i, n := range r.names {
			if n == name {
				r.names = append(r.names[:i], r.names[i+1:]...)
				break
			}
		}
	}
	return name, true
}

func (r *registry) connCount() int {
	return len(r.conns)
}

func (r *registry) activeCount() int {
	return len(r.names)
}

// activeNames returns the active names in insertion order
func (r *registry) activeNames() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}
