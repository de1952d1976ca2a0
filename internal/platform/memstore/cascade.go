package memstore

import "github.com/google/uuid"

// The delete helpers below run with mu held and follow the foreign keys of
// the relational schema: CASCADE everywhere except medical_record.doctor_id,
// which is SET NULL.

func (s *Store) deleteDepartment(id uuid.UUID) {
	for docID, d := range s.doctors {
		if d.DepartmentID == id {
			s.deleteDoctor(docID)
		}
	}
	delete(s.departments, id)
}

func (s *Store) deleteDoctor(id uuid.UUID) {
	for apptID, a := range s.appointments {
		if a.DoctorID == id {
			s.deleteAppointment(apptID)
		}
	}
	for recID, m := range s.records {
		if m.DoctorID != nil && *m.DoctorID == id {
			m.DoctorID = nil
			s.records[recID] = m
		}
	}
	delete(s.doctors, id)
}

func (s *Store) deletePatient(id uuid.UUID) {
	for apptID, a := range s.appointments {
		if a.PatientID == id {
			s.deleteAppointment(apptID)
		}
	}
	for recID, m := range s.records {
		if m.PatientID == id {
			delete(s.records, recID)
		}
	}
	for billID, b := range s.billings {
		if b.PatientID == id {
			delete(s.billings, billID)
		}
	}
	delete(s.patients, id)
}

func (s *Store) deleteAppointment(id uuid.UUID) {
	for billID, b := range s.billings {
		if b.AppointmentID == id {
			delete(s.billings, billID)
		}
	}
	delete(s.appointments, id)
}
