package memory

// Len cantidad de entradas en el mapa, expiradas o no.
func (r *DraftRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
