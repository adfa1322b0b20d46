package server

import (
	"github.com/Abhi1565/JobHunt-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) listJobs(c *fiber.Ctx) error {
	jobs, err := s.services.Lifecycle.ListJobs(c.UserContext(), services.JobQuery{
		Keyword:         c.Query("keyword"),
		IncludeArchived: c.QueryBool("includeArchived"),
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", jobs)
}

func (s *Server) getJob(c *fiber.Ctx) error {
	job, err := s.services.Lifecycle.GetActiveJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", job)
}

func (s *Server) createJob(c *fiber.Ctx) error {
	var request createJobRequest
	if err := bind(c, &request); err != nil {
		return err
	}

	job, err := s.services.Lifecycle.CreateJob(c.UserContext(), callerID(c), request.draft())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "New job created successfully.", job)
}

func (s *Server) listEmployerJobs(c *fiber.Ctx) error {
	jobs, err := s.services.Lifecycle.ListEmployerJobs(c.UserContext(), callerID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", jobs)
}

func (s *Server) updateJob(c *fiber.Ctx) error {
	var request updateJobRequest
	if err := bind(c, &request); err != nil {
		return err
	}

	job, err := s.services.Lifecycle.UpdateJob(c.UserContext(), callerID(c), c.Params("id"), request.update())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Job updated successfully.", job)
}

func (s *Server) apply(c *fiber.Ctx) error {
	application, err := s.services.Applications.Apply(c.UserContext(), callerID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Job applied successfully.", application)
}

func (s *Server) listApplied(c *fiber.Ctx) error {
	applications, err := s.services.Applications.ListApplied(c.UserContext(), callerID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", applications)
}

func (s *Server) listApplicants(c *fiber.Ctx) error {
	job, applications, err := s.services.Applications.ListApplicants(c.UserContext(), callerID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"job": job, "applications": applications})
}

func (s *Server) updateStatus(c *fiber.Ctx) error {
	var request statusRequest
	if err := bind(c, &request); err != nil {
		return err
	}

	result, err := s.services.Transitions.UpdateStatus(c.UserContext(), callerID(c), c.Params("id"), request.change())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(envelope{
		Success: true,
		Message: "Status updated successfully.",
		Data:    result.Application,
		Warning: result.Warning,
	})
}

func (s *Server) registerCompany(c *fiber.Ctx) error {
	var request registerCompanyRequest
	if err := bind(c, &request); err != nil {
		return err
	}

	company, err := s.services.Companies.Register(c.UserContext(), callerID(c), request.CompanyName)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Company registered successfully.", company)
}

func (s *Server) updateCompany(c *fiber.Ctx) error {
	var request updateCompanyRequest
	if err := bind(c, &request); err != nil {
		return err
	}

	company, err := s.services.Companies.Update(c.UserContext(), callerID(c), c.Params("id"), request.update())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Company information updated.", company)
}

func (s *Server) listCompanies(c *fiber.Ctx) error {
	companies, err := s.services.Companies.ListOwned(c.UserContext(), callerID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", companies)
}

func (s *Server) getCompany(c *fiber.Ctx) error {
	company, err := s.services.Companies.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", company)
}

func (s *Server) me(c *fiber.Ctx) error {
	user, err := s.services.Profiles.Get(c.UserContext(), callerID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", user)
}

func (s *Server) updateProfile(c *fiber.Ctx) error {
	var request profileRequest
	if err := bind(c, &request); err != nil {
		return err
	}

	user, err := s.services.Profiles.Update(c.UserContext(), callerID(c), request.update())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Profile updated successfully.", user)
}
